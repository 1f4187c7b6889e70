// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

/*
Package nif lists the network interfaces an operator can capture from.
On Linux it consults the netlink interface directly, so it sees the
operational state of an interface and not just its administrative
flags; elsewhere it falls back to the plain interface enumeration of
the net package.
*/
package nif

// Interface describes one network interface of the capturing host, to
// the extent interesting when choosing a capture interface.
type Interface struct {
	// Index is the interface index assigned by the kernel.
	Index int
	// Name is the interface name, such as "eth0".
	Name string
	// MTU is the maximum transfer unit.
	MTU int
	// HardwareAddr is the textual MAC address, empty for interfaces
	// without one (such as "lo").
	HardwareAddr string
	// OperState is the operational state as reported by the kernel,
	// "unknown" where the platform doesn't tell.
	OperState string
	// Up is true when the interface is up and usable for capturing.
	Up bool
	// Addrs lists the network addresses assigned to this interface, in
	// CIDR notation.
	Addrs []string
}

// List returns the network interfaces of this host, in interface index
// order.
func List() ([]Interface, error) {
	return listInterfaces()
}

// Exists reports whether an interface of the given name is present.
// The pseudo interface "any" always exists, as packet capture tools
// accept it for capturing from all interfaces at once.
func Exists(name string) bool {
	if name == "any" {
		return true
	}
	nifs, err := List()
	if err != nil {
		return true // benefit of the doubt
	}
	for _, nif := range nifs {
		if nif.Name == name {
			return true
		}
	}
	return false
}
