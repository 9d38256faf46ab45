package station

// Badge identifies the status badge variant.
type Badge string

const (
	BadgeAvailable Badge = "available"
	BadgeOccupied  Badge = "occupied"
)

// Tone identifies the reserve button variant.
type Tone string

const (
	TonePrimary  Tone = "primary"
	ToneMuted    Tone = "muted"
	ToneDisabled Tone = "disabled"
)

// Button labels.
const (
	LabelReserve  = "Reserve Slot"
	LabelReserved = "Reserved"
)

// Presentation describes how a displayed station should be rendered.
// It is derived entirely from the station's status and reservation flag.
type Presentation struct {
	Badge          Badge
	ReserveEnabled bool
	ReserveLabel   string
	ReserveTone    Tone
	CancelVisible  bool
	ETALabel       string
}

// Present maps a displayed station to its presentation descriptor.
func Present(s Displayed) Presentation {
	p := Presentation{
		Badge:          BadgeAvailable,
		ReserveEnabled: s.Status == StatusAvailable && !s.Reserved,
		ReserveLabel:   LabelReserve,
		ReserveTone:    TonePrimary,
		CancelVisible:  s.Reserved,
		ETALabel:       "ETA: " + s.ETA,
	}

	if s.Status != StatusAvailable {
		p.Badge = BadgeOccupied
		p.ReserveTone = ToneDisabled
	} else if s.Reserved {
		p.ReserveTone = ToneMuted
	}

	if s.Reserved {
		p.ReserveLabel = LabelReserved
	}

	return p
}
