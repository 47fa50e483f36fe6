// Package options contains the program options.
package options

// Program contains the tclobjdump invocation options.
type Program struct {
	Pid  int    // process to read objects from
	Dump string // raw memory dump file, alternative to a live process
	Base uint64 // load address of the memory dump
	Arch string // target architecture name, empty for the host architecture

	Addresses []string // object addresses to print

	Debug bool
	Quiet bool

	Printer Printer
}

// Printer contains the per print call toggles of the host contract. They
// are read once per print call into the render context.
type Printer struct {
	PrettyPrint bool // nested containers print with newlines and indentation
	ArrayPrint  bool // list elements are labeled with their index
}
