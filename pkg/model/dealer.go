package model

// Dealer is a dealership from the backend reference table or sheet.
type Dealer struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Dealers is the loaded reference data: the list sorted by name plus a
// code to name lookup that agrees with it.
type Dealers struct {
	List   []Dealer
	ByCode map[string]string
}

func (d Dealers) Empty() bool {
	return len(d.List) == 0
}

// Name returns the display name for code.
func (d Dealers) Name(code string) (string, bool) {
	name, ok := d.ByCode[code]
	return name, ok
}
