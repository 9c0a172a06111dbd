package fight

// Intent is the per-tick input for one fighter. MoveLeft, MoveRight and Jump
// are level-triggered held state; Attack and Dodge are edge-triggered and
// consumed by the tick that reads them.
type Intent struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool

	Attack bool
	Dodge  bool
}
