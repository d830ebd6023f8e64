package world

import "container/heap"

// FindPath runs A* over the movement graph from start to end, using hex
// cube distance as the admissible heuristic. Returns the full coordinate
// sequence including both endpoints, or nil when either coordinate is
// off-map or no connected route exists.
func (m *Map) FindPath(start, end HexCoord) []HexCoord {
	if _, ok := m.Tiles[start]; !ok {
		return nil
	}
	if _, ok := m.Tiles[end]; !ok {
		return nil
	}
	if start == end {
		return []HexCoord{start}
	}

	open := &nodeQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{coord: start, priority: float64(Distance(start, end))})

	cameFrom := make(map[HexCoord]HexCoord)
	costSoFar := map[HexCoord]float64{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.coord == end {
			return reconstruct(cameFrom, start, end)
		}

		for _, e := range m.adjacency[current.coord] {
			next := costSoFar[current.coord] + e.weight
			if prev, seen := costSoFar[e.to]; !seen || next < prev {
				costSoFar[e.to] = next
				cameFrom[e.to] = current.coord
				heap.Push(open, &pathNode{
					coord:    e.to,
					priority: next + float64(Distance(e.to, end)),
				})
			}
		}
	}
	return nil
}

// FindProvincePath returns the sequence of province ids from start to end
// over the province adjacency relation (breadth-first, each hop one
// bordering province), or nil when unknown or disconnected. The start
// province is not included; the end province is.
func (m *Map) FindProvincePath(startID, endID int) []int {
	if _, ok := m.Provinces[startID]; !ok {
		return nil
	}
	if _, ok := m.Provinces[endID]; !ok {
		return nil
	}
	if startID == endID {
		return []int{}
	}

	cameFrom := map[int]int{startID: startID}
	queue := []int{startID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == endID {
			break
		}
		for _, nid := range m.NeighborProvinces(current) {
			if _, seen := cameFrom[nid]; seen {
				continue
			}
			cameFrom[nid] = current
			queue = append(queue, nid)
		}
	}

	if _, reached := cameFrom[endID]; !reached {
		return nil
	}
	var path []int
	for at := endID; at != startID; at = cameFrom[at] {
		path = append([]int{at}, path...)
	}
	return path
}

func reconstruct(cameFrom map[HexCoord]HexCoord, start, end HexCoord) []HexCoord {
	var path []HexCoord
	for at := end; at != start; at = cameFrom[at] {
		path = append(path, at)
	}
	path = append(path, start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pathNode struct {
	coord    HexCoord
	priority float64
}

type nodeQueue []*pathNode

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].priority < q[j].priority }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)        { *q = append(*q, x.(*pathNode)) }
func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
