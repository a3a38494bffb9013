package dashboard

import (
	"fmt"
	"strings"

	"github.com/chinmay1088/chainboard/api"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// Keys searched, in order, when a response body is an object.
var (
	balanceKeys = []string{"balance", "result", "value"}
	countKeys   = []string{"count", "transactionCount", "nonce", "result"}
)

// pick returns the first present member of keys when v is an object, or v itself.
func pick(v api.Value, keys []string) (api.Value, bool) {
	if v.Kind() != api.ObjectValue {
		return v, true
	}
	for _, k := range keys {
		if v.Has(k) {
			return v.Get(k), true
		}
	}
	return api.Null(), false
}

// ParseAmount reads a decimal string, a JSON number or a 0x-prefixed hex quantity.
func ParseAmount(v api.Value) (decimal.Decimal, error) {
	switch v.Kind() {
	case api.StringValue:
		s, _ := v.AsString()
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			b, err := hexutil.DecodeBig(s)
			if err != nil {
				return decimal.Zero, fmt.Errorf("invalid hex quantity %q: %w", s, err)
			}
			return decimal.NewFromBigInt(b, 0), nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		return d, nil
	case api.NumberValue:
		n, _ := v.AsNumber()
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount %s: %w", n, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("amount must be a string or number, got %s", v.Kind())
	}
}

// ParseCount reads a non-negative integer count.
func ParseCount(v api.Value) (uint64, error) {
	d, err := ParseAmount(v)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() || !d.IsInteger() {
		return 0, fmt.Errorf("invalid count %s", d)
	}
	b := d.BigInt()
	if !b.IsUint64() {
		return 0, fmt.Errorf("count %s out of range", d)
	}
	return b.Uint64(), nil
}

// BalanceFrom extracts the balance from a balance response body.
func BalanceFrom(body api.Value) (decimal.Decimal, error) {
	v, ok := pick(body, balanceKeys)
	if !ok {
		return decimal.Zero, fmt.Errorf("no balance in response")
	}
	return ParseAmount(v)
}

// CountFrom extracts the count from a transaction count response body.
func CountFrom(body api.Value) (uint64, error) {
	v, ok := pick(body, countKeys)
	if !ok {
		return 0, fmt.Errorf("no transaction count in response")
	}
	return ParseCount(v)
}

// FormatUnits shifts amount by decimals places, e.g. wei to ether with 18.
func FormatUnits(amount decimal.Decimal, decimals int32) string {
	return amount.Shift(-decimals).String()
}

// ExplorerAddressURL links address on the block explorer. Hex addresses are
// shown in checksum form.
func ExplorerAddressURL(explorer, address string) string {
	if explorer == "" || address == "" {
		return ""
	}
	if common.IsHexAddress(address) {
		address = common.HexToAddress(address).Hex()
	}
	return strings.TrimRight(explorer, "/") + "/address/" + address
}

// ExplorerTxURL links a transaction hash on the block explorer.
func ExplorerTxURL(explorer, hash string) string {
	if explorer == "" || hash == "" {
		return ""
	}
	return strings.TrimRight(explorer, "/") + "/tx/" + hash
}
