package planetgen

import "sync"

func task[T any](workersCount int, data []T, fn func(data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}

// span is a half open range of vertex indices handed to one worker.
type span struct {
	start, end int
}

// spans cuts [0, n) into one contiguous range per worker.
func spans(n, workersCount int) []span {
	workersCount = max(workersCount, 1)
	size := (n + workersCount - 1) / workersCount

	out := make([]span, 0, workersCount)
	for start := 0; start < n; start += size {
		out = append(out, span{start: start, end: min(start+size, n)})
	}
	return out
}
