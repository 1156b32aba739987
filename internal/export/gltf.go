// Package export writes the posed avatar as a binary glTF file.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/skinview/pkg/skin"
)

// PixelsPerMeter scales model units (skin pixels) to glTF meters.
const PixelsPerMeter = 16

// Options selects what is exported.
type Options struct {
	Exploded   bool
	Visibility skin.Visibility
}

// DefaultOptions exports every layer in the assembled pose.
func DefaultOptions() Options {
	return Options{Visibility: skin.AllVisible()}
}

type material int

const (
	matBase material = iota
	matOverlay
	matCape
)

// Document builds a glTF document with one node per box under a root
// node scaled to meters. The skin and cape are embedded as PNG images.
func Document(m *skin.Model, tex, cape *skin.Texture, opts Options) (*gltf.Document, error) {
	if err := skin.ValidateSkin(tex); err != nil {
		return nil, err
	}
	if err := skin.ValidateCape(cape); err != nil {
		return nil, err
	}
	tex = skin.UpgradeLegacy(tex)

	doc := gltf.NewDocument()
	doc.Asset.Generator = "skinview"
	doc.Samplers = []*gltf.Sampler{{
		MagFilter: gltf.MagNearest,
		MinFilter: gltf.MinNearest,
		WrapS:     gltf.WrapClampToEdge,
		WrapT:     gltf.WrapClampToEdge,
	}}

	skinTex, err := addTexture(doc, "skin", tex)
	if err != nil {
		return nil, err
	}
	doc.Materials = []*gltf.Material{
		newMaterial("skin", skinTex, gltf.AlphaOpaque, false),
		newMaterial("overlay", skinTex, gltf.AlphaMask, true),
	}

	withCape := cape != nil && opts.Visibility.Visible(skin.Cape)
	if withCape {
		capeTex, err := addTexture(doc, "cape", cape)
		if err != nil {
			return nil, err
		}
		doc.Materials = append(doc.Materials, newMaterial("cape", capeTex, gltf.AlphaOpaque, false))
	}

	root := &gltf.Node{
		Name:  "avatar",
		Scale: [3]float64{1.0 / PixelsPerMeter, 1.0 / PixelsPerMeter, 1.0 / PixelsPerMeter},
	}
	doc.Nodes = append(doc.Nodes, root)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	add := func(p skin.Part, mat material, vscale float32) {
		box := m.Box(p)
		mesh := box.Mesh()
		positions, normals, uvs, indices := Geometry(mesh, vscale)

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: p.String(),
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
				Attributes: map[string]int{
					gltf.POSITION:   modeler.WritePosition(doc, positions),
					gltf.NORMAL:     modeler.WriteNormal(doc, normals),
					gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
				},
				Material: gltf.Index(int(mat)),
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   p.String(),
			Mesh:   gltf.Index(len(doc.Meshes) - 1),
			Matrix: nodeMatrix(box.Matrix(opts.Exploded)),
		})
		root.Children = append(root.Children, len(doc.Nodes)-1)
	}

	if withCape {
		add(skin.Cape, matCape, skin.CapeVScale)
	}
	for _, p := range skin.BaseParts() {
		add(p, matBase, 1)
	}
	for _, p := range skin.Overlays() {
		if opts.Visibility.Visible(p) {
			add(p, matOverlay, 1)
		}
	}
	return doc, nil
}

// Geometry flattens a box mesh into glTF attribute arrays. Texture V is
// multiplied by vscale and triangles are rewound counter-clockwise, the
// glTF front-face convention.
func Geometry(mesh skin.Mesh, vscale float32) (positions, normals [][3]float32, uvs [][2]float32, indices []uint32) {
	positions = make([][3]float32, len(mesh.Vertices))
	normals = make([][3]float32, len(mesh.Vertices))
	uvs = make([][2]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		uvs[i] = [2]float32{v.UV[0], v.UV[1] * vscale}
	}
	indices = make([]uint32, len(mesh.Indices))
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		indices[i] = mesh.Indices[i]
		indices[i+1] = mesh.Indices[i+2]
		indices[i+2] = mesh.Indices[i+1]
	}
	return positions, normals, uvs, indices
}

func nodeMatrix(m mgl32.Mat4) [16]float64 {
	var out [16]float64
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}

func addTexture(doc *gltf.Document, name string, t *skin.Texture) (int, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, t.Image()); err != nil {
		return 0, fmt.Errorf("encoding %s texture: %w", name, err)
	}
	img, err := modeler.WriteImage(doc, name+".png", "image/png", &buf)
	if err != nil {
		return 0, fmt.Errorf("embedding %s texture: %w", name, err)
	}
	doc.Textures = append(doc.Textures, &gltf.Texture{
		Name:    name,
		Sampler: gltf.Index(0),
		Source:  gltf.Index(img),
	})
	return len(doc.Textures) - 1, nil
}

func newMaterial(name string, texture int, mode gltf.AlphaMode, doubleSided bool) *gltf.Material {
	mat := &gltf.Material{
		Name:        name,
		AlphaMode:   mode,
		DoubleSided: doubleSided,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: texture},
			MetallicFactor:   gltf.Float(0),
			RoughnessFactor:  gltf.Float(1),
		},
	}
	if mode == gltf.AlphaMask {
		mat.AlphaCutoff = gltf.Float(1.0 / 255)
	}
	return mat
}

// Write encodes the document as GLB.
func Write(w io.Writer, doc *gltf.Document) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// WriteFile encodes the document as GLB at path.
func WriteFile(path string, doc *gltf.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
