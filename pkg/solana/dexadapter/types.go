package dexadapter

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const RouteItemSize = (2 + // ammIndex
	32) // tokenOut

// RouteItem is a single hop of a swap route: the AMM config index to trade
// through and the token the hop ends on.
type RouteItem struct {
	AmmIndex uint16
	TokenOut ed25519.PublicKey
}

func (obj *RouteItem) String() string {
	return fmt.Sprintf(
		"RouteItem{amm_index=%d, token_out=%s}",
		obj.AmmIndex,
		base58.Encode(obj.TokenOut),
	)
}

func putRouteItem(dst []byte, v RouteItem, offset *int) {
	putUint16(dst, v.AmmIndex, offset)
	putKey(dst, v.TokenOut, offset)
}
func getRouteItem(src []byte, dst *RouteItem, offset *int) bool {
	if len(src) < *offset+RouteItemSize {
		return false
	}
	getUint16(src, &dst.AmmIndex, offset)
	getKey(src, &dst.TokenOut, offset)
	return true
}

// Borsh vectors are a u32 length prefix followed by the items.
func putRouteItems(dst []byte, v []RouteItem, offset *int) {
	putUint32(dst, uint32(len(v)), offset)
	for _, item := range v {
		putRouteItem(dst, item, offset)
	}
}
func getRouteItems(src []byte, dst *[]RouteItem, offset *int) bool {
	if len(src) < *offset+4 {
		return false
	}
	var length uint32
	getUint32(src, &length, offset)

	items := make([]RouteItem, length)
	for i := range items {
		if !getRouteItem(src, &items[i], offset) {
			return false
		}
	}
	*dst = items
	return true
}

func routeItemsSize(v []RouteItem) int {
	return 4 + len(v)*RouteItemSize
}
