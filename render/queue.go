package render

// Queue holds the submissions of one frame. Meshes are kept sorted by depth, highest
// first, so walking the queue from the back draws lower depths first.
type Queue struct {
	cameras []CameraData
	meshes  []MeshData
}

// DrawTo submits a camera.
func (q *Queue) DrawTo(c CameraData) {
	q.cameras = append(q.cameras, c)
}

// Draw submits a mesh. It goes before the first queued mesh whose depth is not greater
// than its own, so among equal depths the latest submission is drawn last.
func (q *Queue) Draw(m MeshData) {
	i := len(q.meshes)
	for j, queued := range q.meshes {
		if queued.Depth <= m.Depth {
			i = j
			break
		}
	}
	q.meshes = append(q.meshes, MeshData{})
	copy(q.meshes[i+1:], q.meshes[i:])
	q.meshes[i] = m
}

// Cameras returns the queued cameras in submission order.
func (q *Queue) Cameras() []CameraData {
	return q.cameras
}

// Meshes returns the queued meshes, highest depth first.
func (q *Queue) Meshes() []MeshData {
	return q.meshes
}

// Reset empties the queue, keeping its capacity.
func (q *Queue) Reset() {
	clear(q.cameras)
	clear(q.meshes)
	q.cameras = q.cameras[:0]
	q.meshes = q.meshes[:0]
}
