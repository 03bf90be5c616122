package registry

import (
	"crypto/ed25519"
)

const (
	AssetItemSize = (8 + // amount
		32) // asset

	RangeSize = (4 + // min
		4) // max
)

// AssetItem is an amount of a specific token mint.
type AssetItem struct {
	Amount uint64
	Asset  ed25519.PublicKey
}

// Range is an inclusive [Min, Max] bound on a u32 value.
type Range struct {
	Min uint32
	Max uint32
}

func (r Range) Contains(v uint32) bool {
	return v >= r.Min && v <= r.Max
}

func putAssetItem(dst []byte, v AssetItem, offset *int) {
	putUint64(dst, v.Amount, offset)
	putKey(dst, v.Asset, offset)
}
func getAssetItem(src []byte, dst *AssetItem, offset *int) {
	getUint64(src, &dst.Amount, offset)
	getKey(src, &dst.Asset, offset)
}

func putRange(dst []byte, v Range, offset *int) {
	putUint32(dst, v.Min, offset)
	putUint32(dst, v.Max, offset)
}
func getRange(src []byte, dst *Range, offset *int) {
	getUint32(src, &dst.Min, offset)
	getUint32(src, &dst.Max, offset)
}
