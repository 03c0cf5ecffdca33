// Package main provides the scalargrad CLI: it records a sample
// expression on both tape kinds, prints the derivatives, and dumps the
// recorded nodes through a klog-backed logging sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/born-ml/scalargrad/scalar"
	"github.com/born-ml/scalargrad/tape"
)

func main() {
	limit := flag.Int("limit", tape.DefaultLogNodeLimit, "maximum number of nodes to dump")
	timeout := flag.Duration("timeout", 5*time.Second, "node dump deadline")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	fmt.Println("f(x,y,z) = cos(x)/((x+y)·sin(z)) at (1.23, 0.66, 2.34)")

	t := tape.NewGradientTape[scalar.Real]()
	x := t.CreateVariable(1.23)
	y := t.CreateVariable(0.66)
	z := t.CreateVariable(2.34)
	f := t.Div(t.Cos(x), t.Mul(t.Add(x, y), t.Sin(z)))
	grad := t.ReverseAccumulateAt(f.Index)

	fmt.Printf("value    = %v\n", f.Value)
	fmt.Printf("gradient = %v\n", grad)

	h := tape.NewHessianTape[scalar.Real]()
	hx := h.CreateVariable(1.23)
	hy := h.CreateVariable(0.66)
	hz := h.CreateVariable(2.34)
	hf := h.Div(h.Cos(hx), h.Mul(h.Add(hx, hy), h.Sin(hz)))
	_, hess := h.ReverseAccumulateAt(hf.Index)

	fmt.Println("hessian  =")
	for _, row := range hess {
		fmt.Printf("  %v\n", row)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	t.LogNodes(ctx, klog.Background(), *limit)
}
