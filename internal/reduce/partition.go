package reduce

// Partition is the half-open output range [Start, End) owned by one worker.
type Partition struct {
	Worker int `json:"worker"`
	Start  int `json:"start"`
	End    int `json:"end"`
}

// Len returns the number of output indices in the partition.
func (p Partition) Len() int { return p.End - p.Start }

// EffectiveWorkers returns how many workers Plan will use for n outputs when
// asked for threads: never more than n, never fewer than one while there is
// work, and zero when n is zero.
func EffectiveWorkers(n, threads int) int {
	if n <= 0 {
		return 0
	}
	if threads < 1 {
		threads = 1
	}
	if threads > n {
		return n
	}
	return threads
}

// Plan splits [0, n) into EffectiveWorkers(n, threads) contiguous partitions.
// The first n%t partitions get one extra element, so sizes never differ by
// more than one and worker ids ascend with the index ranges.
func Plan(n, threads int) []Partition {
	t := EffectiveWorkers(n, threads)
	if t == 0 {
		return nil
	}

	base := n / t
	remainder := n % t

	parts := make([]Partition, t)
	start := 0
	for w := range parts {
		size := base
		if w < remainder {
			size++
		}
		parts[w] = Partition{Worker: w, Start: start, End: start + size}
		start += size
	}
	return parts
}
