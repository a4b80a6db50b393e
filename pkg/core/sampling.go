package core

// RandomInUnitSphere generates a random point inside the unit sphere by rejection
func RandomInUnitSphere(random Random) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		// Accept if inside unit sphere
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a random point in a unit disk in the XY plane (for depth of field)
func RandomInUnitDisk(random Random) Vec3 {
	for {
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		if p.Dot(p) <= 1.0 {
			return p
		}
	}
}
