package core

// Size describes integer pixel or cell dimensions.
type Size struct {
	W int
	H int
}

// Area returns W*H, or zero when either side is non-positive.
func (s Size) Area() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}
