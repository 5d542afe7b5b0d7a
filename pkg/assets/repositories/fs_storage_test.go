package assetsrepositories

import (
	"context"
	"testing"

	"github.com/franela/goblin"
	"github.com/spf13/afero"
)

func TestFsAssetsStorage(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("FsAssetsStorage", func() {
		var fs afero.Fs
		var storage AssetsStorage
		ctx := context.Background()

		g.BeforeEach(func() {
			fs = afero.NewMemMapFs()
			storage = NewFsAssetsStorage(fs, "/output")
		})

		g.It("Should save asset under output directory and return its path", func() {
			location, err := storage.Save(ctx, "out.png", "image/png", []byte{1, 2, 3})

			g.Assert(err).IsNil()
			g.Assert(location).Equal("/output/out.png")

			data, err := afero.ReadFile(fs, "/output/out.png")
			g.Assert(err).IsNil()
			g.Assert(data).Equal([]byte{1, 2, 3})
		})

		g.It("Should overwrite existing asset of the same name", func() {
			storage.Save(ctx, "out.png", "image/png", []byte{1, 2, 3})
			_, err := storage.Save(ctx, "out.png", "image/png", []byte{4})

			g.Assert(err).IsNil()

			data, _ := storage.Get(ctx, "out.png")
			g.Assert(data).Equal([]byte{4})
		})

		g.It("Should reject object names escaping output directory", func() {
			for _, name := range []string{"", "..", "../out.png", "/out.png", "nested//out.png", "nested/../../out.png", "nested/", `nested\out.png`} {
				_, err := storage.Save(ctx, name, "image/png", []byte{1})
				g.Assert(err).Equal(ErrInvalidObjectName)
			}
		})

		g.It("Should keep nested object names in subdirectories", func() {
			location, err := storage.Save(ctx, "2024-05-01/out.png", "image/png", []byte{7})

			g.Assert(err).IsNil()
			g.Assert(location).Equal("/output/2024-05-01/out.png")

			data, err := storage.Get(ctx, "2024-05-01/out.png")
			g.Assert(err).IsNil()
			g.Assert(data).Equal([]byte{7})

			g.Assert(storage.Delete(ctx, "2024-05-01/out.png")).IsNil()
		})

		g.It("Should return not found error when getting or deleting missing asset", func() {
			_, err := storage.Get(ctx, "missing.png")
			g.Assert(err).Equal(ErrAssetNotFound)

			err = storage.Delete(ctx, "missing.png")
			g.Assert(err).Equal(ErrAssetNotFound)
		})

		g.It("Should delete saved asset", func() {
			storage.Save(ctx, "out.png", "image/png", []byte{1})

			g.Assert(storage.Delete(ctx, "out.png")).IsNil()

			exists, _ := afero.Exists(fs, "/output/out.png")
			g.Assert(exists).IsFalse()
		})
	})
}
