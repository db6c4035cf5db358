// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TessVertexShader moves control points into world space.
//
//go:embed tess.vert
var TessVertexShader string

// TessControlShader sets a uniform tessellation level per triangle patch.
//
//go:embed tess.tesc
var TessControlShader string

// TessEvaluationShader places generated vertices and displaces them along the normal.
//
//go:embed tess.tese
var TessEvaluationShader string

// TessFragmentShader shades with the diffuse and normal maps.
//
//go:embed tess.frag
var TessFragmentShader string

// SolidFragmentShader draws a flat color, used in wireframe mode.
//
//go:embed solid.frag
var SolidFragmentShader string

// OverlayVertexShader places a textured quad in screen space.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader draws tinted overlay text.
//
//go:embed overlay.frag
var OverlayFragmentShader string

// PointsVertexShader projects control points without tessellating them.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader draws control points in a flat color.
//
//go:embed points.frag
var PointsFragmentShader string
