package entity

// Player is an opaque identifier of a participant. The zero value marks an empty cell.
type Player string

const NoPlayer Player = ""

func (that Player) IsEmpty() bool {
	return that == NoPlayer
}
