package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ModelName    string                 `json:"modelName,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Radiance     [3]float64             `json:"radiance"` // Single-sample pixel radiance
	Color        string                 `json:"color"`    // Pixel color as displayed
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats radiance the way it appears in the rendered image
func hexColor(v core.Vec3) string {
	c := renderer.ToRGBA(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// extractMaterialInfo lists the shading parameters of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"diffuseColor":        vecArray(mat.DiffuseColor),
		"diffuseReflectance":  mat.DiffuseReflectance,
		"specularReflectance": mat.SpecularReflectance,
		"shininess":           mat.Shininess,
		"reflectivity":        mat.Reflectivity,
		"transparent":         mat.Transparent,
		"color":               hexColor(mat.DiffuseColor),
	}
}

// extractGeometryInfo lists the parameters of a primitive in fitted space
func extractGeometryInfo(p geometry.Primitive) map[string]interface{} {
	properties := make(map[string]interface{})

	switch geom := p.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(geom.V0), vecArray(geom.V1), vecArray(geom.V2)}
		properties["faceNormal"] = vecArray(geom.Normal())
	}

	bbox := p.Bounds()
	properties["boundingBox"] = map[string]interface{}{
		"min": vecArray(bbox.Min),
		"max": vecArray(bbox.Max),
	}
	return properties
}

// inspectPixel casts the primary ray through the pixel's offset and reports
// the nearest hit together with the radiance the tracer computes for it
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	camera := sceneObj.Camera
	x, y := camera.PixelOffset(pixelX, pixelY)
	ray := camera.GetRay(x, y)

	radiance := renderer.NewSampler(sceneObj).SamplePixel(pixelX, pixelY, 1)
	response := InspectResponse{
		Radiance: vecArray(radiance),
		Color:    hexColor(radiance),
	}

	hit, isHit := sceneObj.Hit(ray)
	if !isHit {
		return response
	}

	response.Hit = true
	response.ModelName = hit.Model.Name
	response.GeometryType = geometry.Describe(hit.Primitive)
	response.Point = vecArray(hit.Point)
	response.Normal = vecArray(hit.Normal)
	response.Distance = hit.Distance
	response.Properties = map[string]interface{}{
		"material": extractMaterialInfo(hit.Model.Material),
		"geometry": extractGeometryInfo(hit.Primitive),
	}
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	params, err := parseSceneParams(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= params.Width || pixelY < 0 || pixelY >= params.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := scene.New(params.Scene, params.Width, params.Height)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, pixelX, pixelY))
}
