package redis

type (
	// Store groups the typed per-primitive adapters sharing one pooled
	// client. Adapters translate already-validated arguments into single
	// Redis commands, pipelines, transactions, or script invocations and
	// decode the replies; they never interpret absence as an error.
	Store struct {
		Strings    *Strings
		Hashes     *Hashes
		Sets       *Sets
		SortedSets *SortedSets
		Lists      *Lists
		Streams    *Streams
		Bitmaps    *Bitmaps
		Keys       *Keys
		Admin      *Admin
		Scripts    *Scripts

		client Client
	}

	// KeyValue is a key and the string value to store under it.
	KeyValue struct {
		Key   string
		Value string
	}

	// KeyValueTTL is a KeyValue with an expiry in seconds.
	KeyValueTTL struct {
		Key        string
		Value      string
		TTLSeconds int
	}

	// KeyDelta is a key and the amount to increment it by.
	KeyDelta struct {
		Key   string
		Delta int64
	}

	// KeyField addresses a single field of a hash key.
	KeyField struct {
		Key   string
		Field string
	}

	// FieldValue is one field of a hash and its value.
	FieldValue struct {
		Field string
		Value string
	}

	// KeyMember addresses a member of a set or sorted set key.
	KeyMember struct {
		Key    string
		Member string
	}

	// MemberScore is one member of a sorted set and its score.
	MemberScore struct {
		Member string
		Score  float64
	}
)

// NewStore creates a Store over an existing client.
func NewStore(client Client) *Store {
	return &Store{
		Strings:    &Strings{client: client},
		Hashes:     &Hashes{client: client},
		Sets:       &Sets{client: client},
		SortedSets: &SortedSets{client: client},
		Lists:      &Lists{client: client},
		Streams:    &Streams{client: client},
		Bitmaps:    &Bitmaps{client: client},
		Keys:       &Keys{client: client},
		Admin:      &Admin{client: client},
		Scripts:    &Scripts{client: client},
		client:     client,
	}
}

// Client exposes the underlying client for callers that need raw access.
func (s *Store) Client() Client {
	return s.client
}

// Close closes the underlying client and all pooled connections.
func (s *Store) Close() {
	s.client.Close()
}
