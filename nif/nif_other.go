// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

//go:build !linux

package nif

import (
	"fmt"
	"net"
)

func listInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("cannot list network interfaces: %w", err)
	}
	nifs := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		nif := Interface{
			Index:     iface.Index,
			Name:      iface.Name,
			MTU:       iface.MTU,
			OperState: "unknown",
			Up:        iface.Flags&net.FlagUp != 0,
		}
		if len(iface.HardwareAddr) != 0 {
			nif.HardwareAddr = iface.HardwareAddr.String()
		}
		if addrs, err := iface.Addrs(); err == nil {
			for _, addr := range addrs {
				nif.Addrs = append(nif.Addrs, addr.String())
			}
		}
		nifs = append(nifs, nif)
	}
	return nifs, nil
}
