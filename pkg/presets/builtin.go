package presets

// Built-in preset names.
const (
	Date        = "date"
	DateISO     = "date-iso"
	Time        = "time"
	TimeSeconds = "time-seconds"
	DateTime    = "datetime"
	PhoneUS     = "phone-us"
	Zip         = "zip"
	Zip4        = "zip4"
	CreditCard  = "credit-card"
)

var builtins = []Preset{
	{Name: Date, Description: "US date", Pattern: "99-99-9999", Pipe: &PipeConfig{Kind: PipeKindDate, Format: "MM-DD-YYYY"}},
	{Name: DateISO, Description: "ISO 8601 calendar date", Pattern: "9999-99-99", Pipe: &PipeConfig{Kind: PipeKindDate, Format: "YYYY-MM-DD"}},
	{Name: Time, Description: "24 hour time", Pattern: "99:99", Pipe: &PipeConfig{Kind: PipeKindDate, Format: "HH:mm"}},
	{Name: TimeSeconds, Description: "24 hour time with seconds", Pattern: "99:99:99", Pipe: &PipeConfig{Kind: PipeKindDate, Format: "HH:mm:ss"}},
	{Name: DateTime, Description: "ISO date and time", Pattern: "9999-99-99 99:99", Pipe: &PipeConfig{Kind: PipeKindDate, Format: "YYYY-MM-DD HH:mm"}},
	{Name: PhoneUS, Description: "US phone number", Pattern: "(999) 999-9999"},
	{Name: Zip, Description: "US ZIP code", Pattern: "99999"},
	{Name: Zip4, Description: "US ZIP+4 code", Pattern: "99999-9999"},
	{Name: CreditCard, Description: "16 digit card number", Pattern: "9999 9999 9999 9999"},
}

// Builtins returns a copy of the built-in presets.
func Builtins() []Preset {
	out := make([]Preset, len(builtins))
	for i, p := range builtins {
		out[i] = p.clone()
	}
	return out
}

// Builtin returns a store holding the built-in presets.
func Builtin() *Store {
	store, err := NewStore(Builtins()...)
	if err != nil {
		panic(err)
	}
	return store
}
