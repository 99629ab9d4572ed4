package emath

// 3x3 matrices and 3-vectors, used for color transforms

import(
	"fmt"

	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point
	"gonum.org/v1/gonum/mat"
)

// Use local types so we can hang methods off them. Mat3 is row-major.
type Vec3 f64.Vec3
type Mat3 f64.Mat3

func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func (a Mat3)Mult(b Mat3) Mat3 {
	return Mat3{
		a[3*0+0]*b[3*0+0] + a[3*0+1]*b[3*1+0] + a[3*0+2]*b[3*2+0],
		a[3*0+0]*b[3*0+1] + a[3*0+1]*b[3*1+1] + a[3*0+2]*b[3*2+1],
		a[3*0+0]*b[3*0+2] + a[3*0+1]*b[3*1+2] + a[3*0+2]*b[3*2+2],

		a[3*1+0]*b[3*0+0] + a[3*1+1]*b[3*1+0] + a[3*1+2]*b[3*2+0],
		a[3*1+0]*b[3*0+1] + a[3*1+1]*b[3*1+1] + a[3*1+2]*b[3*2+1],
		a[3*1+0]*b[3*0+2] + a[3*1+1]*b[3*1+2] + a[3*1+2]*b[3*2+2],

		a[3*2+0]*b[3*0+0] + a[3*2+1]*b[3*1+0] + a[3*2+2]*b[3*2+0],
		a[3*2+0]*b[3*0+1] + a[3*2+1]*b[3*1+1] + a[3*2+2]*b[3*2+1],
		a[3*2+0]*b[3*0+2] + a[3*2+1]*b[3*1+2] + a[3*2+2]*b[3*2+2],
	}
}

func (m Mat3)Apply(v Vec3) Vec3 {
	return Vec3{
		(m[3*0+0]*v[0] + m[3*0+1]*v[1] + m[3*0+2]*v[2]),
		(m[3*1+0]*v[0] + m[3*1+1]*v[1] + m[3*1+2]*v[2]),
		(m[3*2+0]*v[0] + m[3*2+1]*v[1] + m[3*2+2]*v[2]),
	}
}

// RowSums is what the matrix does to a neutral gray (1,1,1).
func (m Mat3)RowSums() Vec3 {
	return Vec3{
		m[3*0+0] + m[3*0+1] + m[3*0+2],
		m[3*1+0] + m[3*1+1] + m[3*1+2],
		m[3*2+0] + m[3*2+1] + m[3*2+2],
	}
}

func (m Mat3)Dense() *mat.Dense {
	return mat.NewDense(3, 3, m[:])
}

// Determinant is zero (ish) for a matrix that collapses colors together.
func (m Mat3)Determinant() float64 {
	return mat.Det(m.Dense())
}

// FromRows builds a Mat3 from a [][]float64, as you'd write it in a
// config file. It must be exactly 3x3.
func FromRows(rows [][]float64) (Mat3, error) {
	m := Mat3{}
	if len(rows) != 3 {
		return m, fmt.Errorf("matrix needs 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			return m, fmt.Errorf("matrix row %d needs 3 values, got %d", i, len(row))
		}
		copy(m[3*i:3*i+3], row)
	}
	return m, nil
}

func (m Mat3)Rows() [][]float64 {
	return [][]float64{
		{m[3*0+0], m[3*0+1], m[3*0+2]},
		{m[3*1+0], m[3*1+1], m[3*1+2]},
		{m[3*2+0], m[3*2+1], m[3*2+2]},
	}
}

func (m Mat3)String() string {
	str := fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*0+0], m[3*0+1], m[3*0+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*1+0], m[3*1+1], m[3*1+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*2+0], m[3*2+1], m[3*2+2])
	return str
}

func (v Vec3)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

func (v Vec3)Scale(f float64) Vec3 {
	return Vec3{v[0]*f, v[1]*f, v[2]*f}
}

func (v Vec3)Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func (v *Vec3)FloorAt(min float64) {
	if v[0] < min { v[0] = min }
	if v[1] < min { v[1] = min }
	if v[2] < min { v[2] = min }
}

func (v *Vec3)CeilingAt(max float64) {
	if v[0] > max { v[0] = max }
	if v[1] > max { v[1] = max }
	if v[2] > max { v[2] = max }
}

// ClampTo does both FloorAt and CeilingAt.
func (v *Vec3)ClampTo(min, max float64) {
	v.FloorAt(min)
	v.CeilingAt(max)
}
