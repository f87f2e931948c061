package nlp

import "math/rand"

// TrainTestSplit shuffles the indices with the given seed and splits them
// into train and test sets by ratio. The test set holds int(n*testRatio)
// samples; with very small n it may be empty and the caller must handle that.
func TrainTestSplit(n int, testRatio float64, seed int64) (train, test []int) {
	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(n)
	nTest := int(float64(n) * testRatio)
	test = indices[:nTest]
	train = indices[nTest:]
	return train, test
}

// StratifiedSplit splits indices so that each label keeps roughly the same
// proportion in train and test. Every class contributes at least one test
// sample when it has two or more members.
func StratifiedSplit(labels []string, testRatio float64, seed int64) (train, test []int) {
	rng := rand.New(rand.NewSource(seed))

	byLabel := make(map[string][]int)
	var order []string
	for i, label := range labels {
		if _, ok := byLabel[label]; !ok {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], i)
	}

	for _, label := range order {
		group := byLabel[label]
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })

		nTest := int(float64(len(group)) * testRatio)
		if nTest == 0 && len(group) >= 2 {
			nTest = 1
		}
		test = append(test, group[:nTest]...)
		train = append(train, group[nTest:]...)
	}
	return train, test
}

// Select picks the elements of values at the given indices.
func Select(values []string, indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = values[idx]
	}
	return out
}
