package pressure

import "log"

// Repository is the persistence contract the store depends on. The backing
// engine (SQLite in production, a map in tests) owns physical storage; the
// store owns the accumulation and classification math.
type Repository interface {
	// Upsert writes the absolute pressure value for (file, scope), keyed
	// uniquely on the pair.
	Upsert(file, scope string, pressure float64, temp Temperature, decayRate float64) error
	// Get returns the row for (file, scope), or nil when absent.
	Get(file, scope string) (*Row, error)
	// Query returns rows for the scope at or above min, ordered by
	// raw_pressure descending. Empty scope matches all scopes.
	Query(scope string, min Temperature) ([]Row, error)
	// DecayAll multiplies every matching row by (1 - decay_rate),
	// reclassifies its temperature, and returns the number of rows changed.
	DecayAll(scope string) (int, error)
}

// Store applies pressure accumulation and decay on top of a Repository.
//
// Every method returns a documented safe default when the repository is
// unreachable — failures are logged, never propagated. Scores are advisory
// hints; a lost write costs nothing but a slightly staler suggestion.
type Store struct {
	repo      Repository
	decayRate float64
}

// NewStore creates a Store. decayRate is applied to rows created by
// Accumulate; zero falls back to 0.1.
func NewStore(repo Repository, decayRate float64) *Store {
	if decayRate <= 0 || decayRate >= 1 {
		decayRate = 0.1
	}
	return &Store{repo: repo, decayRate: decayRate}
}

// Accumulate records a touch of file within project, raising its pressure
// with diminishing returns: new = old + increment*(1-old). The result stays
// below 1.0 for any number of touches and any positive increment.
//
// An empty project maps to the global scope. Passing the reserved sentinel
// as a real project name is silently ignored. Returns the updated row, or
// nil when the write was rejected or the repository is unavailable.
func (s *Store) Accumulate(file, project string, increment float64) *Row {
	if project == GlobalScope {
		// Reserved sentinel used as a project name — refuse the write
		// rather than pollute the global partition.
		return nil
	}
	scope := ScopeFor(project)

	old := 0.0
	existing, err := s.repo.Get(file, scope)
	if err != nil {
		log.Printf("pressure: get %s@%s: %v", file, scope, err)
		return nil
	}
	rate := s.decayRate
	if existing != nil {
		old = existing.RawPressure
		rate = existing.DecayRate
	}

	raw := old + increment*(1-old)
	if raw < 0 {
		raw = 0
	}
	temp := Classify(raw)

	if err := s.repo.Upsert(file, scope, raw, temp, rate); err != nil {
		log.Printf("pressure: upsert %s@%s: %v", file, scope, err)
		return nil
	}
	return &Row{
		FilePath:    file,
		Scope:       scope,
		RawPressure: raw,
		Temperature: temp,
		DecayRate:   rate,
	}
}

// DecayAll applies one decay step to every row in scope (all scopes when
// empty) and returns the number of rows changed; 0 when the store is empty
// or unreachable.
func (s *Store) DecayAll(scope string) int {
	n, err := s.repo.DecayAll(scope)
	if err != nil {
		log.Printf("pressure: decay all (%s): %v", scope, err)
		return 0
	}
	return n
}

// Query returns the rows for scope at or above min, hottest first.
// Returns an empty slice when the repository is unavailable.
func (s *Store) Query(scope string, min Temperature) []Row {
	rows, err := s.repo.Query(scope, min)
	if err != nil {
		log.Printf("pressure: query %s: %v", scope, err)
		return nil
	}
	return rows
}

// ScoredAbove returns the ScoredFile projections for scope at or above min.
func (s *Store) ScoredAbove(scope string, min Temperature) []ScoredFile {
	rows := s.Query(scope, min)
	if len(rows) == 0 {
		return nil
	}
	files := make([]ScoredFile, len(rows))
	for i, r := range rows {
		files[i] = r.Scored()
	}
	return files
}
