package cpuhash

import (
	"bytes"
	stdsha256 "crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"testing"
)

// SHA-256 of the empty stream.
const emptyDigestHex = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func mustNew(t testing.TB, tag []byte) *Workload {
	t.Helper()
	w, err := New(tag)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestDeterminism(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 100} {
		a := mustNew(t, DefaultTag).Run(n)
		b := mustNew(t, DefaultTag).Run(n)
		if a.Digest != b.Digest {
			t.Errorf("n=%d: digests differ across runs: %x vs %x", n, a.Digest, b.Digest)
		}
	}
}

func TestIterationCountSensitivity(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 100} {
		a := mustNew(t, DefaultTag).Run(n)
		b := mustNew(t, DefaultTag).Run(n + 1)
		if a.Digest == b.Digest {
			t.Errorf("n=%d: digest unchanged by an extra iteration", n)
		}
	}
}

func TestZeroIterations(t *testing.T) {
	rep := mustNew(t, DefaultTag).Run(0)

	if got := hex.EncodeToString(rep.Digest[:]); got != emptyDigestHex {
		t.Errorf("zero-iteration digest = %s, want %s", got, emptyDigestHex)
	}
	if rep.Elapsed < 0 {
		t.Errorf("negative elapsed time: %v", rep.Elapsed)
	}
}

// The digest must match a straightforward crypto/sha256 reference that
// feeds the same sequence of buffer states.
func TestDigestMatchesReference(t *testing.T) {
	const n = 5

	ref := stdsha256.New()
	var buf [BufferSize]byte
	copy(buf[:], DefaultTag)
	for i := uint64(0); i < n; i++ {
		binary.LittleEndian.PutUint64(buf[24:], i)
		ref.Write(buf[:])
	}
	want := ref.Sum(nil)

	rep := mustNew(t, DefaultTag).Run(n)
	if !bytes.Equal(rep.Digest[:], want) {
		t.Errorf("digest = %x, want %x", rep.Digest, want)
	}
}

func TestBufferLayout(t *testing.T) {
	tag := []byte("layout-check")
	w := mustNew(t, tag)

	w.writeCounter(0)
	want := make([]byte, BufferSize)
	copy(want, tag)
	if !bytes.Equal(w.buf[:], want) {
		t.Errorf("i=0: buf = %x, want %x", w.buf, want)
	}

	// 2^32 spans byte 4 of the counter region.
	w.writeCounter(1 << 32)
	copy(want[24:], []byte{0, 0, 0, 0, 1, 0, 0, 0})
	if !bytes.Equal(w.buf[:], want) {
		t.Errorf("i=2^32: buf = %x, want %x", w.buf, want)
	}
}

func TestTagLengthInvariant(t *testing.T) {
	if _, err := New(bytes.Repeat([]byte{'x'}, 25)); err == nil {
		t.Error("expected error for 25-byte tag")
	}
	if _, err := New(bytes.Repeat([]byte{'x'}, 24)); err != nil {
		t.Errorf("24-byte tag should fill the prefix region exactly: %v", err)
	}
}

func TestParseIterations(t *testing.T) {
	cases := []struct {
		args []string
		want uint64
	}{
		{nil, DefaultIterations},
		{[]string{}, DefaultIterations},
		{[]string{"not-a-number"}, DefaultIterations},
		{[]string{"-5"}, DefaultIterations},
		{[]string{"3.5"}, DefaultIterations},
		{[]string{"0"}, 0},
		{[]string{"123"}, 123},
		{[]string{"2000000"}, DefaultIterations},
		{[]string{"18446744073709551615"}, 1<<64 - 1},
	}
	for _, c := range cases {
		if got := ParseIterations(c.args); got != c.want {
			t.Errorf("ParseIterations(%q) = %d, want %d", c.args, got, c.want)
		}
	}
}

var reportLine = regexp.MustCompile(`^iterations=\d+ digest=[0-9a-f]{64} elapsed_ms=\d+\.\d{3}$`)

func TestReportFormat(t *testing.T) {
	for _, n := range []uint64{0, 3} {
		line := mustNew(t, DefaultTag).Run(n).String()
		if !reportLine.MatchString(line) {
			t.Errorf("n=%d: report %q does not match expected format", n, line)
		}
	}
}

func BenchmarkHashLoop(b *testing.B) {
	w := mustNew(b, DefaultTag)

	b.ReportAllocs()
	b.SetBytes(BufferSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.writeCounter(uint64(i))
		w.h.Write(w.buf[:])
	}
}
