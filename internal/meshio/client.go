package meshio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"bodyrig/internal/mathutil"
)

// Client fetches generated meshes from a BodyKit-style measurement-to-mesh
// endpoint. The service returns OBJ text; only the vertices are kept. The
// rigging pipeline expects a T-posed quad mesh, so those parameters are
// fixed in every request.
type Client struct {
	endpoint  string
	accessKey string
	secret    string
	http      *http.Client
}

// NewClient creates a mesh client. A zero timeout means no client timeout;
// per-request deadlines come from the context.
func NewClient(endpoint, accessKey, secret string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		secret:    secret,
		http:      &http.Client{Timeout: timeout},
	}
}

type meshRequest struct {
	Measurements map[string]float64 `json:"measurements"`
	UnitSystem   string             `json:"unitSystem"`
	Gender       string             `json:"gender"`
	Scheme       string             `json:"scheme"`
	Pose         string             `json:"pose"`
	MeshFaces    string             `json:"meshFaces"`
}

// GetMesh requests one mesh for the given measurements and returns its
// vertex array.
func (c *Client) GetMesh(ctx context.Context, measurements map[string]float64, gender string) ([]mathutil.Vec3, error) {
	body, err := json.Marshal(meshRequest{
		Measurements: measurements,
		UnitSystem:   "metric",
		Gender:       gender,
		Scheme:       "flexible",
		Pose:         "T",
		MeshFaces:    "quads",
	})
	if err != nil {
		return nil, fmt.Errorf("meshio: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("meshio: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("SecretPair accesskey=%s,secret=%s", c.accessKey, c.secret))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meshio: request mesh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("meshio: mesh endpoint returned %s: %s", resp.Status, bytes.TrimSpace(snippet))
	}

	verts, err := ParseOBJVertices(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(verts) == 0 {
		return nil, fmt.Errorf("meshio: mesh response contained no vertices")
	}
	return verts, nil
}

// RandomMeasurements produces a plausible height/weight pair for sample
// mesh generation. Height in cm, weight in kg derived from a random BMI.
func RandomMeasurements(rng *rand.Rand) map[string]float64 {
	height := 147 + rng.Float64()*53 // 147-200 cm
	bmi := 18 + rng.Float64()*12     // 18-30
	hm := height / 100
	return map[string]float64{
		"height": height,
		"weight": bmi * hm * hm,
	}
}
