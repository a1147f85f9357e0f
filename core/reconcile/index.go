package reconcile

import "sync"

// Index holds the normalized view of one dataset.
type Index struct {
	// Accessions is the set of non-empty accession keys.
	Accessions map[string]struct{}

	// AccessionOrder lists accession keys in first-seen order.
	AccessionOrder []string

	// Pairs lists distinct keys in first-seen order.
	Pairs []Key

	// Identifiers maps an accession key to the non-empty identifier keys seen with it.
	Identifiers map[string]map[string]struct{}

	// AllIdentifiers is the set of non-empty identifier keys across every accession.
	AllIdentifiers map[string]struct{}

	// Excluded counts records dropped for an empty accession key.
	Excluded int
}

// BuildIndex normalizes records into an Index. Records with an empty accession key
// are excluded from every set.
func BuildIndex(records []Record) *Index {
	idx := &Index{
		Accessions:     make(map[string]struct{}),
		Identifiers:    make(map[string]map[string]struct{}),
		AllIdentifiers: make(map[string]struct{}),
	}
	seenPairs := make(map[Key]struct{}, len(records))

	for _, r := range records {
		key := KeyOf(r)
		if key.Accession == "" {
			idx.Excluded++
			continue
		}

		if _, ok := idx.Accessions[key.Accession]; !ok {
			idx.Accessions[key.Accession] = struct{}{}
			idx.AccessionOrder = append(idx.AccessionOrder, key.Accession)
		}

		if _, ok := seenPairs[key]; !ok {
			seenPairs[key] = struct{}{}
			idx.Pairs = append(idx.Pairs, key)
		}

		if key.Identifier == "" {
			continue
		}
		ids, ok := idx.Identifiers[key.Accession]
		if !ok {
			ids = make(map[string]struct{})
			idx.Identifiers[key.Accession] = ids
		}
		ids[key.Identifier] = struct{}{}
		idx.AllIdentifiers[key.Identifier] = struct{}{}
	}

	return idx
}

// HasAccession reports whether the accession key is present.
func (idx *Index) HasAccession(acc string) bool {
	if acc == "" {
		return false
	}
	_, ok := idx.Accessions[acc]
	return ok
}

// HasIdentifier reports whether the identifier key was seen with the accession key.
func (idx *Index) HasIdentifier(acc, id string) bool {
	if acc == "" || id == "" {
		return false
	}
	_, ok := idx.Identifiers[acc][id]
	return ok
}

// HasAnyIdentifier reports whether the identifier key was seen with any accession.
func (idx *Index) HasAnyIdentifier(id string) bool {
	if id == "" {
		return false
	}
	_, ok := idx.AllIdentifiers[id]
	return ok
}

// buildIndices indexes both datasets concurrently.
func buildIndices(predicted, reference []Record) (*Index, *Index) {
	var (
		predictedIdx *Index
		referenceIdx *Index
		wg           sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		predictedIdx = BuildIndex(predicted)
	}()

	go func() {
		defer wg.Done()
		referenceIdx = BuildIndex(reference)
	}()

	wg.Wait()

	return predictedIdx, referenceIdx
}
