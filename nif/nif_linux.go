// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

//go:build linux

package nif

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

func listInterfaces() ([]Interface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("cannot list network interfaces: %w", err)
	}
	nifs := make([]Interface, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()
		nif := Interface{
			Index:     attrs.Index,
			Name:      attrs.Name,
			MTU:       attrs.MTU,
			OperState: attrs.OperState.String(),
			Up: attrs.Flags&net.FlagUp != 0 &&
				attrs.OperState != netlink.OperDown &&
				attrs.OperState != netlink.OperNotPresent,
		}
		if len(attrs.HardwareAddr) != 0 {
			nif.HardwareAddr = attrs.HardwareAddr.String()
		}
		if addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL); err == nil {
			for _, addr := range addrs {
				nif.Addrs = append(nif.Addrs, addr.IPNet.String())
			}
		}
		nifs = append(nifs, nif)
	}
	return nifs, nil
}
