package bank

// AddressRange is a free subrange tagged with the bank it belongs to, used by
// the packer to track which ranges across which banks are still available.
type AddressRange struct {
	BankIndex int
	Start     int
	End       int
}

// Len returns the number of bytes covered by the range.
func (r AddressRange) Len() int {
	return r.End - r.Start
}

// Data is a mutable per-bank staging buffer built up during an import run.
type Data struct {
	Layout Layout
	Bytes  []byte
}

// NewData creates an all-zero staging buffer sized to the layout's bank.
func NewData(layout Layout) *Data {
	return &Data{
		Layout: layout,
		Bytes:  make([]byte, layout.BankSize),
	}
}
