// sim/metrics_utils.go
package sim

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// Bin represents a single latency-histogram bin with its integer key and count.
type Bin struct {
	Key   int
	Count int
}

// CalculatePercentile calculates the p-th percentile of a data list.
func CalculatePercentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	sortedData := make([]float64, n)
	copy(sortedData, data)

	sort.Float64s(sortedData)

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if lowerIdx == upperIdx {
		return sortedData[lowerIdx]
	}
	lowerVal := sortedData[lowerIdx]
	upperVal := sortedData[upperIdx]
	if upperIdx >= n {
		return sortedData[n-1]
	}
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// SaveToFile dumps a raw latency sample (e.g. Metrics.PacketLatencies)
// as a comma-separated list, for offline distribution analysis.
func (m *Metrics) SaveToFile(data []int64, fileName string) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0777)
	if err != nil {
		logrus.Fatalf("Error creating file %s: %v\n", fileName, err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Fatalf("Error closing file %s: %v\n", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	defer func() {
		if flushErr := writer.Flush(); flushErr != nil {
			logrus.Fatalf("Error flushing writer for file %s: %v\n", fileName, flushErr)
		}
	}()

	for _, v := range data {
		if _, writeErr := fmt.Fprint(writer, v, ", "); writeErr != nil {
			logrus.Fatalf("Error writing int %d to file: %v\n", v, writeErr)
			return
		}
	}

	logrus.Debugf("Successfully wrote to '%s'\n", fileName)
}

// HistogramBins buckets a latency sample into fixed-width bins, sorted
// by key, for a quick text-mode distribution dump.
func HistogramBins(data []int64, width int) []Bin {
	if width <= 0 {
		width = 1
	}
	counts := make(map[int]int)
	for _, v := range data {
		key := int(v) / width * width
		counts[key]++
	}
	bins := make([]Bin, 0, len(counts))
	for k, c := range counts {
		bins = append(bins, Bin{Key: k, Count: c})
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Key < bins[j].Key })
	return bins
}
