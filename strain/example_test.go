package strain_test

import (
	"fmt"

	"github.com/cwbudde/algo-ligo/strain"
)

func ExampleCompact_Expand() {
	meta := strain.Compact{Start: 1126259446, Stop: 1126259447, Dt: 0.25}

	fmt.Println(meta.Len(), meta.Expand())
	// Output: 4 [1.126259446e+09 1.12625944625e+09 1.1262594465e+09 1.12625944675e+09]
}

func ExampleChannelSegments() {
	flags := []int{1, 1, 0, 0, 1, 1, 1, 0}

	for _, seg := range strain.ChannelSegments(flags, 1000) {
		fmt.Printf("[%g, %g) %gs\n", seg.Start, seg.Stop, seg.Duration())
	}
	// Output:
	// [1000, 1002) 2s
	// [1004, 1007) 3s
}
