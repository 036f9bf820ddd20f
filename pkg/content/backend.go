package content

// VerbBackend is the persistence behind the verb collection.
//
// SaveUserExample receives the full collection after the sentence was
// appended together with the change itself; a backend may rewrite the whole
// snapshot or apply only the change.
type VerbBackend interface {
	LoadVerbs() ([]VerbRecord, error)
	SaveUserExample(snapshot []VerbRecord, baseForm, sentence string) error
}

// FileBackend keeps the verb collection in a single JSON document and
// rewrites it in full on every save.
type FileBackend struct {
	Path string
}

func (b FileBackend) LoadVerbs() ([]VerbRecord, error) {
	return LoadVerbs(b.Path)
}

func (b FileBackend) SaveUserExample(snapshot []VerbRecord, _, _ string) error {
	return WriteVerbs(b.Path, snapshot)
}
