package smt

import "testing"

func TestBitKeySetClearGetBit(t *testing.T) {
	var k BitKey
	for _, i := range []int{0, 1, 7, 8, 63, 128, 255} {
		if k.GetBit(i) {
			t.Fatalf("bit %d set before SetBit", i)
		}
		k.SetBit(i)
		if !k.GetBit(i) {
			t.Fatalf("bit %d not set after SetBit", i)
		}
		k.ClearBit(i)
		if k.GetBit(i) {
			t.Fatalf("bit %d still set after ClearBit", i)
		}
	}
}

func TestBitKeyForkHeightEqualKeysIsZero(t *testing.T) {
	var a, b BitKey
	a.SetBit(5)
	b.SetBit(5)
	if h := a.ForkHeight(b); h != 0 {
		t.Fatalf("ForkHeight of equal keys = %d, want 0", h)
	}
}

func TestBitKeyForkHeightHighestDifferingBit(t *testing.T) {
	var a, b BitKey
	a.SetBit(200)
	a.SetBit(10)
	b.SetBit(10)
	// a and b agree everywhere except bit 200.
	if h := a.ForkHeight(b); h != 200 {
		t.Fatalf("ForkHeight = %d, want 200", h)
	}
	if h := b.ForkHeight(a); h != 200 {
		t.Fatalf("ForkHeight (reversed) = %d, want 200", h)
	}
}

// TestBitKeyCopyBitsIsProjection checks property 8: bits inside [start,end)
// match the source, bits outside are zero.
func TestBitKeyCopyBitsIsProjection(t *testing.T) {
	var k BitKey
	for i := 0; i < bitKeyBits; i++ {
		if i%3 == 0 {
			k.SetBit(i)
		}
	}
	starts := []int{0, 1, 7, 64, 130, 255}
	for _, start := range starts {
		for _, size := range []int{0, 1, 5, 40, 130} {
			end := start + size
			if end > bitKeyBits {
				end = bitKeyBits
			}
			got := k.CopyBits(start, end)
			for i := 0; i < bitKeyBits; i++ {
				want := false
				if i >= start && i < end {
					want = k.GetBit(i)
				}
				if got.GetBit(i) != want {
					t.Fatalf("CopyBits(%d,%d) bit %d = %v, want %v", start, end, i, got.GetBit(i), want)
				}
			}
		}
	}
}

func TestBitKeyParentPathClearsLowBits(t *testing.T) {
	var k BitKey
	k.SetBit(3)
	k.SetBit(100)
	k.SetBit(255)
	p := k.ParentPath(100)
	if p.GetBit(3) || p.GetBit(100) {
		t.Fatalf("ParentPath(100) should clear bits <= 100")
	}
	if !p.GetBit(255) {
		t.Fatalf("ParentPath(100) should preserve bits > 100")
	}
}

func TestBitKeyParentPathTopBitIsZero(t *testing.T) {
	var k BitKey
	k.SetBit(maxBitIndex)
	p := k.ParentPath(maxBitIndex)
	if !p.IsZero() {
		t.Fatalf("ParentPath(8N-1) should be the zero key, got %x", p)
	}
}

func TestBitKeyDigestRoundTrip(t *testing.T) {
	var k BitKey
	k.SetBit(17)
	d := k.Digest()
	if BitKeyFromDigest(d) != k {
		t.Fatalf("Digest/BitKeyFromDigest round trip mismatch")
	}
}
