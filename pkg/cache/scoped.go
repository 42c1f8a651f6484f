package cache

// ScopedKeyer prefixes every generated key, isolating namespaces when a
// shared backend (typically Redis) serves more than one deployment or
// snapshot channel.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so all keys carry prefix. A nil inner falls
// back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(sourceHash, opts)
}

// LevelsKey generates a prefixed levels key.
func (k *ScopedKeyer) LevelsKey(graphHash string, opts LevelsKeyOpts) string {
	return k.prefix + k.inner.LevelsKey(graphHash, opts)
}

// SummaryKey generates a prefixed summary key.
func (k *ScopedKeyer) SummaryKey(sourceHash string, opts SummaryKeyOpts) string {
	return k.prefix + k.inner.SummaryKey(sourceHash, opts)
}
