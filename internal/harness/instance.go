package harness

// Instance is one instance directory's example file: a name (derived
// from the file's base name) and the path to feed cmd/synthregex.
// Running an instance more than once (Tester's runEach) produces one
// Task per run, all pointing back at the same Instance.
//
// GroundTruth holds the contents of a sibling "<name>.gt" file when
// present: a forest-native convention standing in for the original
// test harness's reliance on an external answers file, letting an
// instance opt into automated --ground-truth oracle mode instead of
// the fixed non-interactive answer stream.
type Instance struct {
	Name        string
	Path        string
	GroundTruth string
	Tasks       []*Task
}

func newInstance(name, path, groundTruth string) *Instance {
	return &Instance{Name: name, Path: path, GroundTruth: groundTruth}
}

func (i *Instance) addTask(t *Task) {
	i.Tasks = append(i.Tasks, t)
}

func (i *Instance) String() string {
	return i.Name
}
