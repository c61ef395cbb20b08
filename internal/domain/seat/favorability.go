package seat

// Favorability は座席の好ましさを返す。値が小さいほど良い席
//
// row と col は0始まり。前列ほど、また中央に近いほど値が小さくなる。
// 同じ寸法のグリッドに対しては常に同じ値を返す。
func Favorability(row, col, rows, cols int) int {
	center := cols / 2
	rowScore := row * rows
	colScore := col - center
	if colScore < 0 {
		colScore = -colScore
	}
	return rowScore + colScore
}
