package preview

// FixPosition computes the translation that pulls a scaled image back into
// the viewport after a drag or zoom. width and height are the on-screen
// size (already swapped for rotation), left and top its bounding box origin.
// ok is false when neither axis needs a correction.
//
// An axis that fits the viewport recenters when it spills past an edge. An
// oversized axis is pulled flush to the edge it has drifted away from so the
// viewport stays fully covered.
func FixPosition(width, height, left, top float64, client Size) (fix Patch, ok bool) {
	if width <= client.Width && height <= client.Height {
		return Translate(0, 0), true
	}

	if x, fixed := fixAxis(left, width, client.Width); fixed {
		fix.X = ptr(x)
	}
	if y, fixed := fixAxis(top, height, client.Height); fixed {
		fix.Y = ptr(y)
	}
	return fix, !fix.IsEmpty()
}

func fixAxis(start, size, client float64) (float64, bool) {
	end := start + size
	offset := (size - client) / 2

	if size > client {
		if start > 0 {
			return offset, true
		}
		if start < 0 && end < client {
			return -offset, true
		}
		return 0, false
	}

	if start < 0 || end > client {
		return 0, true
	}
	return 0, false
}

// reboundFor evaluates FixPosition against the element's current state.
func reboundFor(el Element, t Transform, client Size) (Patch, bool) {
	layout := el.Layout()
	w, h := layout.Width*t.Scale, layout.Height*t.Scale
	if t.IsRotated() {
		w, h = h, w
	}
	box := el.BoundingRect()
	return FixPosition(w, h, box.Left, box.Top, client)
}
