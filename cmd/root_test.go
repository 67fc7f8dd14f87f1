package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"

	"github.com/trainer400/CampoMinato/director/random"
	"github.com/trainer400/CampoMinato/game"
)

func testCommand(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "campominato"}
	addFlags(cmd)
	cmd.SetErr(io.Discard)
	if err := cmd.ParseFlags(args); err != nil {
		panic(err)
	}
	return cmd
}

func writeFile(dir, name, contents string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		panic(err)
	}
	return path
}

func layoutConfig(rows string) game.GameConfig {
	config := game.NewGameConfig()
	config.CellSize = 10
	config.Snapshot = &game.BoardSnapshot{SerializedBoard: rows}
	config.Logger = quietLogger()
	return config
}

func TestLoadConfig(t *testing.T) {
	Convey("Given a config file", t, func() {
		dir := t.TempDir()
		path := writeFile(dir, "campominato.yaml", "width: 7\nheight: 6\ndirector: random\n")

		Convey("Its values apply unless a flag overrides them", func() {
			config, err := loadConfig(testCommand("--height", "5", "--seed", "9"), path)
			So(err, ShouldBeNil)
			So(config.Width, ShouldEqual, 7)
			So(config.Height, ShouldEqual, 5)
			So(config.CellSize, ShouldEqual, 32)
			So(config.Seed, ShouldEqual, 9)
			So(config.Director, ShouldResemble, &random.Director{Seed: 9})
		})

		Convey("Environment variables come before the file", func() {
			t.Setenv("CAMPOMINATO_MINE_PROBABILITY", "0.5")
			t.Setenv("CAMPOMINATO_WIDTH", "12")

			config, err := loadConfig(testCommand(), path)
			So(err, ShouldBeNil)
			So(config.Width, ShouldEqual, 12)
			So(config.MineProbability, ShouldEqual, 0.5)
			So(config.Seed, ShouldNotEqual, 0)
		})

		Convey("A layout brings its own seed", func() {
			layout := writeFile(dir, "layout.yaml", "seed: 21\nboard: |-\n  *..\n  ...\n")

			config, err := loadConfig(testCommand("--layout", layout, "-d", "none"), path)
			So(err, ShouldBeNil)
			So(config.Seed, ShouldEqual, 21)
			So(config.Director, ShouldBeNil)
			So(config.Snapshot.SerializedBoard, ShouldEqual, "*..\n...")
		})

		Convey("Bad values are reported", func() {
			bad := writeFile(dir, "bad.yaml", "director: chess\n")
			_, err := loadConfig(testCommand(), bad)
			So(err, ShouldNotBeNil)

			_, err = loadConfig(testCommand("--log-level", "loud"), path)
			So(err, ShouldNotBeNil)

			broken := writeFile(dir, "broken.yaml", "board: |-\n  *.\n  *\n")
			_, err = loadConfig(testCommand("--layout", broken), path)
			So(err, ShouldNotBeNil)

			_, err = loadConfig(testCommand(), filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Unknown directors are rejected by the flag", t, func() {
		cmd := &cobra.Command{Use: "campominato"}
		addFlags(cmd)
		So(cmd.ParseFlags([]string{"--director", "chess"}), ShouldNotBeNil)
	})
}

func TestPlay(t *testing.T) {
	Convey("Given a game played from a script", t, func() {
		var out bytes.Buffer

		Convey("Every move is printed", func() {
			err := play(context.Background(), layoutConfig("*.."), bytes.NewBufferString("l 2 0\n"), &out)
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, " 0 ###\n")
			So(out.String(), ShouldContainSubstring, " 0 #1.\n")
		})

		Convey("q ends a game played by a director", func() {
			config := layoutConfig("*..")
			config.Director = &random.Director{Seed: 1}
			config.DirectorInterval = time.Hour

			err := play(context.Background(), config, bytes.NewBufferString("q\n"), &out)
			So(err, ShouldBeNil)
			So(out.String(), ShouldStartWith, "001  000")
		})
	})
}
