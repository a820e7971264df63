// Package heatmap aggregates raw per-player position samples into counted grid points.
package heatmap

import (
	"strconv"
	"strings"
)

type cell struct {
	x int
	y int
}

// Aggregate turns "x=10;y=20|x=10;y=20|x=11;y=21" into one point per distinct
// (x,y) with the number of samples at that cell. Blank and malformed segments
// are skipped. Points are returned in first-seen order.
func Aggregate(raw string) []Point {
	points := make([]Point, 0)
	index := make(map[cell]int)

	for _, segment := range strings.Split(raw, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		x, y, ok := parseSegment(segment)
		if !ok {
			continue
		}

		key := cell{x: x, y: y}
		if i, seen := index[key]; seen {
			points[i].Value++
			continue
		}
		index[key] = len(points)
		points = append(points, Point{X: x, Y: y, Value: 1})
	}

	return points
}

func parseSegment(segment string) (int, int, bool) {
	var (
		x, y       int
		hasX, hasY bool
	)

	for _, part := range strings.Split(segment, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, rawValue, ok := strings.Cut(part, "=")
		if !ok {
			return 0, 0, false
		}
		value, err := strconv.Atoi(strings.TrimSpace(rawValue))
		if err != nil {
			return 0, 0, false
		}

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "x":
			if hasX {
				return 0, 0, false
			}
			x, hasX = value, true
		case "y":
			if hasY {
				return 0, 0, false
			}
			y, hasY = value, true
		default:
			return 0, 0, false
		}
	}

	return x, y, hasX && hasY
}
