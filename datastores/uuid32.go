package datastores

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// uuid32 is [uuid.UUID] rendered as lowercase unpadded [base32] text.
type uuid32 struct{ uuid.UUID }

var uuid32Encoding = base32.StdEncoding.WithPadding(base32.NoPadding) //nolint: gochecknoglobals,nolintlint

func (id *uuid32) initV4() *uuid32 { id.UUID = uuid.Must(uuid.NewRandom()); return id }

func (id *uuid32) String() string {
	return strings.ToLower(uuid32Encoding.EncodeToString(id.UUID[:]))
}

// newContactID is the default id generator of [ContactsJSON].
func newContactID() ContactID { return new(uuid32).initV4().String() }
