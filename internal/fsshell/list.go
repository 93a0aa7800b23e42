package fsshell

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/quocvuong92/hadoop-repl/internal/dfs"
)

const timeLayout = "2006-01-02 15:04"

func (sh *Shell) ls(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{sh.wd}
	}
	return sh.eachRemote(ctx, args, func(p string) error {
		name := sh.resolve(p)
		info, err := sh.fs.Stat(name)
		if err != nil {
			return pathError("ls", p, err)
		}
		if !info.IsDir() {
			sh.printEntry(name, info)
			return nil
		}
		children, err := sh.fs.ReadDir(name)
		if err != nil {
			return pathError("ls", p, err)
		}
		fmt.Fprintf(sh.out, "Found %d items\n", len(children))
		for _, child := range children {
			sh.printEntry(path.Join(name, child.Name()), child)
		}
		return nil
	})
}

func (sh *Shell) lsr(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{sh.wd}
	}
	return sh.eachRemote(ctx, args, func(p string) error {
		root := sh.resolve(p)
		return dfs.Walk(sh.fs, root, func(name string, info os.FileInfo, err error) error {
			if err != nil {
				return pathError("lsr", p, err)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if name == root && info.IsDir() {
				return nil
			}
			sh.printEntry(name, info)
			return nil
		})
	})
}

// printEntry writes one "hadoop fs -ls" line
func (sh *Shell) printEntry(name string, info os.FileInfo) {
	owner, group := "-", "-"
	if o, ok := info.(dfs.Owned); ok {
		owner, group = o.Owner(), o.OwnerGroup()
	}
	replication := "-"
	if !info.IsDir() {
		replication = "1"
	}
	fmt.Fprintf(sh.out, "%s %3s %-8s %-8s %10d %s %s\n",
		permissions(info.Mode()),
		replication,
		owner,
		group,
		sizeOf(info),
		info.ModTime().Format(timeLayout),
		name,
	)
}

// permissions renders a mode as drwxr-xr-x
func permissions(mode os.FileMode) string {
	var sb strings.Builder
	if mode.IsDir() {
		sb.WriteByte('d')
	} else {
		sb.WriteByte('-')
	}
	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			sb.WriteByte(rwx[i])
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func sizeOf(info os.FileInfo) int64 {
	if info.IsDir() {
		return 0
	}
	return info.Size()
}

// summary totals a tree
type summary struct {
	dirs  int64
	files int64
	bytes int64
}

func (sh *Shell) summarize(ctx context.Context, name string) (summary, error) {
	var s summary
	err := dfs.Walk(sh.fs, name, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			s.dirs++
		} else {
			s.files++
			s.bytes += info.Size()
		}
		return nil
	})
	return s, err
}

func (sh *Shell) du(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{sh.wd}
	}
	return sh.eachRemote(ctx, args, func(p string) error {
		name := sh.resolve(p)
		info, err := sh.fs.Stat(name)
		if err != nil {
			return pathError("du", p, err)
		}
		if !info.IsDir() {
			fmt.Fprintf(sh.out, "%-12d %s\n", info.Size(), name)
			return nil
		}
		children, err := sh.fs.ReadDir(name)
		if err != nil {
			return pathError("du", p, err)
		}
		fmt.Fprintf(sh.out, "Found %d items\n", len(children))
		for _, child := range children {
			childName := path.Join(name, child.Name())
			s, err := sh.summarize(ctx, childName)
			if err != nil {
				return pathError("du", childName, err)
			}
			fmt.Fprintf(sh.out, "%-12d %s\n", s.bytes, childName)
		}
		return nil
	})
}

func (sh *Shell) dus(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{sh.wd}
	}
	return sh.eachRemote(ctx, args, func(p string) error {
		name := sh.resolve(p)
		s, err := sh.summarize(ctx, name)
		if err != nil {
			return pathError("dus", p, err)
		}
		fmt.Fprintf(sh.out, "%s\t%d\n", name, s.bytes)
		return nil
	})
}

func (sh *Shell) count(ctx context.Context, args []string) error {
	return sh.eachRemote(ctx, args, func(p string) error {
		name := sh.resolve(p)
		s, err := sh.summarize(ctx, name)
		if err != nil {
			return pathError("count", p, err)
		}
		fmt.Fprintf(sh.out, "%12d %12d %18d %s\n", s.dirs, s.files, s.bytes, name)
		return nil
	})
}

func (sh *Shell) df(_ context.Context, args []string) error {
	if len(args) == 1 {
		if _, err := sh.fs.Stat(sh.resolve(args[0])); err != nil {
			return pathError("df", args[0], err)
		}
	}
	u, err := sh.fs.Usage()
	if err != nil {
		return fmt.Errorf("df: %w", err)
	}
	percent := 0
	if u.Capacity > 0 {
		percent = int(u.Used * 100 / u.Capacity)
	}
	fmt.Fprintf(sh.out, "%-30s %15s %15s %15s %5s\n", "Filesystem", "Size", "Used", "Available", "Use%")
	fmt.Fprintf(sh.out, "%-30s %15d %15d %15d %4d%%\n", sh.fs.URI(), u.Capacity, u.Used, u.Remaining, percent)
	return nil
}

// stat prints the modification time, or fields of an optional format:
// %b size, %F type, %n name, %o block size, %r replication,
// %y mtime as text, %Y mtime in milliseconds.
func (sh *Shell) stat(ctx context.Context, args []string) error {
	format := "%y"
	if len(args) > 1 && strings.Contains(args[0], "%") {
		format, args = args[0], args[1:]
	}
	return sh.eachRemote(ctx, args, func(p string) error {
		info, err := sh.fs.Stat(sh.resolve(p))
		if err != nil {
			return pathError("stat", p, err)
		}
		fmt.Fprintln(sh.out, formatStat(format, info))
		return nil
	})
}

func formatStat(format string, info os.FileInfo) string {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch format[i] {
		case 'b':
			fmt.Fprintf(&sb, "%d", sizeOf(info))
		case 'F':
			if info.IsDir() {
				sb.WriteString("directory")
			} else if info.Size() == 0 {
				sb.WriteString("regular empty file")
			} else {
				sb.WriteString("regular file")
			}
		case 'n':
			sb.WriteString(info.Name())
		case 'o':
			sb.WriteString("0")
		case 'r':
			if info.IsDir() {
				sb.WriteString("0")
			} else {
				sb.WriteString("1")
			}
		case 'y':
			sb.WriteString(info.ModTime().UTC().Format("2006-01-02 15:04:05"))
		case 'Y':
			fmt.Fprintf(&sb, "%d", info.ModTime().UnixNano()/int64(time.Millisecond))
		default:
			sb.WriteByte('%')
			sb.WriteByte(format[i])
		}
	}
	return sb.String()
}
