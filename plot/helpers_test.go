package plot

import "image"

func defaultRect() image.Rectangle {
	return image.Rect(0, 0, defaultWidth, defaultHeight)
}
