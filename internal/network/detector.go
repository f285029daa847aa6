// Package network maps Nigerian phone numbers to their mobile carrier by
// leading prefix.
package network

// Carrier identifies a Nigerian mobile network operator.
type Carrier string

const (
	MTN     Carrier = "mtn"
	Airtel  Carrier = "airtel"
	Glo     Carrier = "glo"
	Mobile9 Carrier = "9mobile"
	Unknown Carrier = "unknown"
)

// prefixes holds the 4-digit number prefixes assigned to each carrier.
var prefixes = map[string]Carrier{
	"0803": MTN,
	"0806": MTN,
	"0703": MTN,
	"0704": MTN,
	"0706": MTN,
	"0810": MTN,
	"0813": MTN,
	"0814": MTN,
	"0816": MTN,
	"0903": MTN,
	"0906": MTN,
	"0913": MTN,
	"0916": MTN,

	"0802": Airtel,
	"0808": Airtel,
	"0701": Airtel,
	"0708": Airtel,
	"0812": Airtel,
	"0901": Airtel,
	"0902": Airtel,
	"0904": Airtel,
	"0907": Airtel,
	"0912": Airtel,

	"0805": Glo,
	"0807": Glo,
	"0705": Glo,
	"0811": Glo,
	"0815": Glo,
	"0905": Glo,
	"0915": Glo,

	"0809": Mobile9,
	"0817": Mobile9,
	"0818": Mobile9,
	"0908": Mobile9,
	"0909": Mobile9,
}

// Detect returns the carrier that owns the number's leading 4-digit prefix,
// or Unknown when the prefix is unassigned or the input is too short.
func Detect(phone string) Carrier {
	if len(phone) < 4 {
		return Unknown
	}

	if carrier, ok := prefixes[phone[:4]]; ok {
		return carrier
	}

	return Unknown
}

// Carriers lists the known carrier tags, used to validate client-supplied
// network selections.
func Carriers() []Carrier {
	return []Carrier{MTN, Airtel, Glo, Mobile9}
}

// Valid reports whether tag names a known carrier.
func Valid(tag string) bool {
	switch Carrier(tag) {
	case MTN, Airtel, Glo, Mobile9:
		return true
	}
	return false
}
