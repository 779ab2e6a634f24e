package chain

import (
	"math/big"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("uint64 from big int", func(t *testing.T) {
		n, err := ToUint64(big.NewInt(1735689600))
		if err != nil {
			t.Fatal(err)
		}
		if n != 1735689600 {
			t.Errorf("expected 1735689600 got %d", n)
		}
	})

	t.Run("uint64 overflow fails", func(t *testing.T) {
		huge := new(big.Int).Lsh(big.NewInt(1), 127)
		if _, err := ToUint64(huge); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("uint8 from native and big values", func(t *testing.T) {
		cases := []struct {
			raw  interface{}
			want uint8
		}{
			{nil, 0},
			{uint8(2), 2},
			{uint64(3), 3},
			{big.NewInt(4), 4},
		}
		for _, c := range cases {
			got, err := ToUint8(c.raw)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("expected %d got %d", c.want, got)
			}
		}
	})

	t.Run("uint8 overflow fails", func(t *testing.T) {
		if _, err := ToUint8(big.NewInt(256)); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("negative fails", func(t *testing.T) {
		if _, err := ToUint64(int64(-1)); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("string passthrough", func(t *testing.T) {
		s, err := ToString("QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
		if err != nil {
			t.Fatal(err)
		}
		if s != "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG" {
			t.Errorf("unexpected value %q", s)
		}
	})

	t.Run("string from int fails", func(t *testing.T) {
		if _, err := ToString(42); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("raw rendering of big values", func(t *testing.T) {
		huge := new(big.Int).Lsh(big.NewInt(1), 72)
		if RawString(huge) != huge.String() {
			t.Errorf("unexpected raw rendering %s", RawString(huge))
		}
	})
}
