package models

// AddressStatus is the state of an address acquisition attempt.
type AddressStatus string

const (
	AddressIdle    AddressStatus = "idle"
	AddressLoading AddressStatus = "loading"
	AddressReady   AddressStatus = "ready"
	AddressError   AddressStatus = "error"
)

// Position is a geographic coordinate resolved from the device location.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UserAddressState holds the per-session delivery address state. It is
// mutated only by the address acquisition flow; everyone else reads a copy.
type UserAddressState struct {
	Username string        `json:"username"`
	Status   AddressStatus `json:"status"`
	Position *Position     `json:"position,omitempty"`
	Address  string        `json:"address"`
	Error    string        `json:"error,omitempty"`
}
