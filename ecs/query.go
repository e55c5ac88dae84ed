package ecs

// Modifier says how a requirement constrains matching entities.
type Modifier uint8

const (
	// Required components must be present.
	Required Modifier = iota
	// Optional components may be absent; their data is still delivered.
	Optional
	// Excluded components must be absent.
	Excluded
)

func (m Modifier) String() string {
	switch m {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Excluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Requirement is one entry of a query or system requirement list: a plain
// Handle, Maybe(h) or Not(h).
type Requirement interface {
	requirement() requirement
}

type requirement struct {
	id       ComponentId
	reg      *ComponentRegistry
	modifier Modifier
}

func (r requirement) requirement() requirement { return r }

// Maybe marks h as optional: it does not restrict matching, and its accessor
// reports absence for entities that lack it.
func Maybe(h Handle) Requirement {
	if h == nil {
		return requirement{modifier: Optional}
	}
	return requirement{id: h.Id(), reg: h.registry(), modifier: Optional}
}

// Not excludes entities carrying h.
func Not(h Handle) Requirement {
	if h == nil {
		return requirement{modifier: Excluded}
	}
	return requirement{id: h.Id(), reg: h.registry(), modifier: Excluded}
}

// resolved is a requirement list reduced to masks.
type resolved struct {
	components []requirement
	require    Mask
	exclude    Mask
}

func (r *ComponentRegistry) resolve(reqs []Requirement) resolved {
	res := resolved{components: make([]requirement, 0, len(reqs))}
	for _, req := range reqs {
		if req == nil {
			panic(unregistered(nil))
		}
		rq := req.requirement()
		if rq.reg != r || int(rq.id) >= len(r.entries) {
			panic(unregistered(req))
		}
		switch rq.modifier {
		case Required:
			res.require |= Bit(rq.id)
		case Excluded:
			res.exclude |= Bit(rq.id)
		}
		res.components = append(res.components, rq)
	}
	return res
}

type queryKey struct {
	require Mask
	exclude Mask
}

// queryIndex is the memoized entity list for one mask pair. Entities appear in
// creation order.
type queryIndex struct {
	key      queryKey
	entities []EntityId
	hits     int64
}

// queryCache maps mask pairs to live entity lists. Indexes are built lazily
// the first time a pair is requested and maintained incrementally afterwards.
type queryCache struct {
	byKey   map[queryKey]*queryIndex
	indexes []*queryIndex
}

func newQueryCache() *queryCache {
	return &queryCache{
		byKey: make(map[queryKey]*queryIndex),
	}
}

// filter returns the index for (require, exclude), scanning store to build it
// on first use.
func (c *queryCache) filter(store *entityStore, require, exclude Mask) *queryIndex {
	key := queryKey{require: require, exclude: exclude}
	if index, ok := c.byKey[key]; ok {
		index.hits++
		return index
	}

	index := &queryIndex{key: key}
	store.each(func(id EntityId, mask Mask) bool {
		if mask.Matches(require, exclude) {
			index.entities = append(index.entities, id)
		}
		return true
	})
	c.byKey[key] = index
	c.indexes = append(c.indexes, index)
	return index
}

// insert appends a newly created entity to every index it satisfies.
func (c *queryCache) insert(id EntityId, mask Mask) {
	for _, index := range c.indexes {
		if mask.Matches(index.key.require, index.key.exclude) {
			index.entities = append(index.entities, id)
		}
	}
}

// prune drops dead ids from every index that could contain one of them. The
// surviving order is kept, and a new slice is built so lists handed out
// earlier are left untouched.
func (c *queryCache) prune(deadMasks Mask, isDead func(EntityId) bool) {
	for _, index := range c.indexes {
		if !couldHold(index.key, deadMasks) {
			continue
		}
		kept := make([]EntityId, 0, len(index.entities))
		for _, id := range index.entities {
			if isDead(id) {
				continue
			}
			kept = append(kept, id)
		}
		index.entities = kept
	}
}

// couldHold is a cheap pre-check: an index with a non-empty require mask can
// only hold a dead entity if some dead mask shares a required bit.
func couldHold(key queryKey, deadMasks Mask) bool {
	return key.require == 0 || deadMasks.Intersects(key.require)
}

// Query returns the live entities matching reqs, in creation order. It shares
// the cache used by systems, so repeating a query is a map lookup.
//
// The slice belongs to the World. It stays correct until the next entity is
// created or the next tick purges destroyed entities; clone it to keep it.
func (w *World) Query(reqs ...Requirement) []EntityId {
	res := w.registry.resolve(reqs)
	return w.queries.filter(w.entities, res.require, res.exclude).entities
}

// QueryMask is Query for callers that already hold masks, such as tooling that
// builds predicates at runtime. Every bit must belong to a registered
// component.
func (w *World) QueryMask(require, exclude Mask) []EntityId {
	registered := Mask(1)<<len(w.registry.entries) - 1
	if stray := (require | exclude) &^ registered; stray != 0 {
		panic(unregistered(stray))
	}
	return w.queries.filter(w.entities, require, exclude).entities
}

// QueryStats describes one cached mask pair.
type QueryStats struct {
	Require Mask
	Exclude Mask
	Matches int
	Hits    int64
}

// QueryStats lists the cached query indexes in the order they were built.
func (w *World) QueryStats() []QueryStats {
	stats := make([]QueryStats, len(w.queries.indexes))
	for i, index := range w.queries.indexes {
		stats[i] = QueryStats{
			Require: index.key.require,
			Exclude: index.key.exclude,
			Matches: len(index.entities),
			Hits:    index.hits,
		}
	}
	return stats
}
