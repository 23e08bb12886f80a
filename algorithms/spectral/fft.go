package spectral

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer is the complex-to-complex discrete Fourier transform the
// spectral algorithms delegate to. Forward is unscaled with a negative
// exponent; Inverse is scaled by 1/N so Inverse(Forward(x)) == x.
// Amplitudes are therefore sqrt(N) larger than those of a unitary
// (1/sqrt(N) both ways) transform.
// Output index k holds frequency k*fs/N for k <= N/2, negative frequencies
// are mirrored at N-k.
type Transformer interface {
	Forward(x []complex128) []complex128
	Inverse(x []complex128) []complex128
}

// TransformerName selects a Transformer backend
type TransformerName string

const (
	TransformerGoDSP TransformerName = "godsp"
	TransformerGonum TransformerName = "gonum"
)

// NewTransformer returns the backend registered under name. An empty name
// selects go-dsp.
func NewTransformer(name string) (Transformer, error) {
	switch TransformerName(strings.ToLower(strings.TrimSpace(name))) {
	case "", TransformerGoDSP:
		return NewGoDSPTransformer(), nil
	case TransformerGonum:
		return NewGonumTransformer(), nil
	default:
		return nil, fmt.Errorf("unknown transformer %q", name)
	}
}

// GoDSPTransformer computes transforms with mjibson/go-dsp, which handles
// any length (Bluestein for non powers of two).
type GoDSPTransformer struct{}

// NewGoDSPTransformer creates a go-dsp backed transformer
func NewGoDSPTransformer() *GoDSPTransformer {
	return &GoDSPTransformer{}
}

// Forward computes the forward FFT
func (GoDSPTransformer) Forward(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFT(x)
}

// Inverse computes the inverse FFT
func (GoDSPTransformer) Inverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.IFFT(x)
}

// GonumTransformer computes transforms with gonum's dsp/fourier package.
// Plans are cached per length; the cache is safe for concurrent use.
type GonumTransformer struct {
	mu    sync.Mutex
	plans map[int]*sync.Pool
}

// NewGonumTransformer creates a gonum backed transformer
func NewGonumTransformer() *GonumTransformer {
	return &GonumTransformer{plans: make(map[int]*sync.Pool)}
}

func (g *GonumTransformer) pool(n int) *sync.Pool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.plans[n]
	if !ok {
		p = &sync.Pool{New: func() any { return fourier.NewCmplxFFT(n) }}
		g.plans[n] = p
	}
	return p
}

// Forward computes the forward FFT
func (g *GonumTransformer) Forward(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	p := g.pool(len(x))
	plan := p.Get().(*fourier.CmplxFFT)
	defer p.Put(plan)

	return plan.Coefficients(nil, x)
}

// Inverse computes the inverse FFT
func (g *GonumTransformer) Inverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	p := g.pool(len(x))
	plan := p.Get().(*fourier.CmplxFFT)
	defer p.Put(plan)

	out := plan.Sequence(nil, x)
	scale := complex(1/float64(len(x)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// ToComplex promotes a real signal to complex with zero imaginary parts
func ToComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}

// RealPart returns the real parts of x
func RealPart(x []complex128) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = real(v)
	}
	return out
}
