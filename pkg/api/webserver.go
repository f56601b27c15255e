package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/chenBenjamin97/football-analyzer/pkg/jobs"
	"github.com/chenBenjamin97/football-analyzer/pkg/report"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/chenBenjamin97/football-analyzer/pkg/video"
)

//chartKinds maps a chart kind to its file suffix and content type
var chartKinds = map[string][2]string{
	"camera":        {"_camera.png", "image/png"},
	"possession":    {"_possession.png", "image/png"},
	"heatmap_dark":  {"_heatmap_dark.webp", "image/webp"},
	"heatmap_light": {"_heatmap_light.webp", "image/webp"},
}

func SetRouter() *gin.Engine {
	r := gin.Default()
	registry := jobs.NewRegistry()

	//serve html pages to client
	if staticPath := viper.GetString("frontend.static-files-path"); staticPath != "" {
		r.Static("/client", staticPath)
		r.StaticFile("/", staticPath+"home_page/dist/index.html")
	}

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/ReadyVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.ready")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/UserUploadsVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Play", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		if videoName == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		analyzed := ctx.Query("analyzed")
		if analyzed != "true" && analyzed != "false" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		var videoPath string
		if analyzed == "true" {
			videoPath = path.Join(viper.GetString("directory.ready"), videoName+"."+viper.GetString("video.prod_format"))
		} else {
			videoPath = path.Join(viper.GetString("directory.source"), videoName+"."+viper.GetString("video.prod_format"))
		}

		serveFile(ctx, videoPath, "video/mp4")
	})

	apiRoutes.GET("/Stats", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		if videoName == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		summary, err := report.ReadJSON(path.Join(viper.GetString("directory.stats"), utils.BaseName(videoName)+".json"))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				ctx.Status(http.StatusNotFound)
			} else {
				log.Printf("api/Stats: Error, got '%v'", err)
				ctx.Status(http.StatusInternalServerError)
			}
			return
		}

		ctx.JSON(http.StatusOK, summary)
	})

	apiRoutes.GET("/Chart", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		chart, ok := chartKinds[ctx.Query("kind")]
		if videoName == "" || !ok {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		serveFile(ctx, path.Join(viper.GetString("directory.stats"), utils.BaseName(videoName)+chart[0]), chart[1])
	})

	apiRoutes.GET("/Status", func(ctx *gin.Context) {
		job, err := registry.Get(ctx.Query("id"))
		if err != nil {
			ctx.JSON(http.StatusNotFound, job)
			return
		}

		ctx.JSON(http.StatusOK, job)
	})

	apiRoutes.POST("/Upload", func(ctx *gin.Context) {
		file, fHeader, err := ctx.Request.FormFile("video")
		if err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		defer file.Close()

		if existNames, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		} else {
			if utils.InSlice(fHeader.Filename, existNames) {
				ctx.Status(http.StatusNotAcceptable)
				return
			}
		}

		log.Printf("api/Upload: Recived new file: name - '%s', size - %v Bytes", fHeader.Filename, fHeader.Size)

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			log.Printf("api/Upload: Could not read request's body, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		srcFilePath := path.Join(viper.GetString("directory.source"), path.Base(fHeader.Filename))

		if err = os.WriteFile(srcFilePath, fileBytes, 0444); err != nil {
			log.Printf("api/Upload: Could not write '%s' file, got '%v'", srcFilePath, err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		id := registry.Run(fHeader.Filename, func(id string) error {
			return video.Analyze(path.Base(fHeader.Filename), id)
		})

		ctx.JSON(http.StatusAccepted, gin.H{"id": id})
	})

	return r
}

//serveFile writes the file at filePath with the given content type, or answers 404/500 when it can't
func serveFile(ctx *gin.Context, filePath, contentType string) {
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			ctx.Status(http.StatusNotFound)
		} else {
			ctx.Status(http.StatusInternalServerError)
		}
		return
	}

	ctx.Header("Content-Type", contentType)
	http.ServeFile(ctx.Writer, ctx.Request, filePath)
}
