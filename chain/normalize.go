package chain

import (
	"fmt"
	"math"
	"math/big"
)

// Raw values decoded from the ledger arrive as a mix of native integers
// and big-integer wrappers depending on the declared solidity width.
// These helpers convert them to strict fixed-width values exactly once,
// at the gateway boundary, and fail on any lossy conversion.

func ToUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d cannot convert to uint64", n)
		}
		return uint64(n), nil
	case *big.Int:
		if n == nil {
			return 0, nil
		}
		if !n.IsUint64() {
			return 0, fmt.Errorf("value %s does not fit in uint64", n.String())
		}
		return n.Uint64(), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to uint64", v)
	}
}

func ToUint8(v interface{}) (uint8, error) {
	n, err := ToUint64(v)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint8 {
		return 0, fmt.Errorf("value %d does not fit in uint8", n)
	}
	return uint8(n), nil
}

// ToInt64 converts epoch-second timestamps. The ledger stores them as
// uint256, anything past MaxInt64 is a data error, not a real date.
func ToInt64(v interface{}) (int64, error) {
	n, err := ToUint64(v)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("value %d does not fit in int64", n)
	}
	return int64(n), nil
}

func ToString(v interface{}) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("cannot convert %T to string", v)
	}
}

// RawString renders a raw ledger value for error reporting.
func RawString(v interface{}) string {
	if n, ok := v.(*big.Int); ok && n != nil {
		return n.String()
	}
	return fmt.Sprintf("%v", v)
}
