package metadata

// Nop is the backend used when neither the metadata source nor the metadata target is
// enabled: it reads nothing and accepts every write.
type Nop struct{}

func (Nop) Read(string) (Tags, error) { return Tags{}, nil }

func (Nop) Write(string, Tags) error { return nil }

func (Nop) Close() error { return nil }
