package stack

import (
	"encoding/binary"
	"fmt"
	"net"
)

const (
	// minNetworkPrefix and maxPrefix bound VPC and subnet block sizes.
	minNetworkPrefix = 16
	maxPrefix        = 28
)

// ipv4Block is an aligned IPv4 CIDR block.
type ipv4Block struct {
	base   uint64
	prefix int
}

// parseIPv4Block parses an IPv4 CIDR and rejects host bits past the prefix.
func parseIPv4Block(s string) (ipv4Block, error) {
	ip, network, err := net.ParseCIDR(s)
	if err != nil {
		return ipv4Block{}, fmt.Errorf("%q is not valid CIDR notation", s)
	}

	ip4 := ip.To4()
	if ip4 == nil {
		return ipv4Block{}, fmt.Errorf("only IPv4 blocks are supported, got %s", s)
	}

	prefix, _ := network.Mask.Size()
	block := ipv4Block{base: ipToUint(network.IP), prefix: prefix}
	if ipToUint(ip4) != block.base {
		return ipv4Block{}, fmt.Errorf("%s has host bits set, network address is %s", s, block)
	}
	return block, nil
}

func (b ipv4Block) size() uint64 {
	return uint64(1) << (32 - b.prefix)
}

// end returns the first address after the block.
func (b ipv4Block) end() uint64 {
	return b.base + b.size()
}

func (b ipv4Block) contains(o ipv4Block) bool {
	return o.base >= b.base && o.end() <= b.end()
}

// overlaps reports whether two blocks share an address. Aligned blocks
// either nest or are disjoint.
func (b ipv4Block) overlaps(o ipv4Block) bool {
	return b.base < o.end() && o.base < b.end()
}

func (b ipv4Block) String() string {
	return fmt.Sprintf("%s/%d", uintToIP(b.base), b.prefix)
}

// nextFree returns the lowest block of the given prefix inside parent that
// starts at or after cursor and overlaps none of taken.
func nextFree(parent ipv4Block, prefix int, cursor uint64, taken []ipv4Block) (ipv4Block, bool) {
	size := uint64(1) << (32 - prefix)
	if cursor < parent.base {
		cursor = parent.base
	}

	for {
		// Align up to the block size.
		start := (cursor + size - 1) / size * size
		candidate := ipv4Block{base: start, prefix: prefix}
		if candidate.end() > parent.end() {
			return ipv4Block{}, false
		}

		clash := false
		for _, t := range taken {
			if candidate.overlaps(t) {
				cursor = t.end()
				clash = true
				break
			}
		}
		if !clash {
			return candidate, true
		}
	}
}

// ipToUint converts an IPv4 address to an integer.
func ipToUint(ip net.IP) uint64 {
	if ip4 := ip.To4(); ip4 != nil {
		return uint64(binary.BigEndian.Uint32(ip4))
	}
	return 0
}

// uintToIP converts an integer back to an IPv4 address.
func uintToIP(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
