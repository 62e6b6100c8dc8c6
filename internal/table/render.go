package table

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/young1lin/lsgrid/internal/cell"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/theme"
)

func renderPermissions(f *fs.File, th *theme.Theme) cell.TextCell {
	if f.Info == nil {
		return cell.Blank(th.Punctuation)
	}
	mode := f.Info.Mode()
	p := th.Perms

	var c cell.TextCell
	c.Push(cell.Styled(p.FileType, typeChar(f.Kind)), 1)

	bit := func(set bool, ch string, style lipgloss.Style) {
		if set {
			c.Push(cell.Styled(style, ch), 1)
		} else {
			c.Push(cell.Styled(p.NoPermission, "-"), 1)
		}
	}
	execBit := func(set, special bool, on, off string, style lipgloss.Style) {
		switch {
		case set && special:
			c.Push(cell.Styled(p.Special, on), 1)
		case special:
			c.Push(cell.Styled(p.Special, off), 1)
		case set:
			c.Push(cell.Styled(style, "x"), 1)
		default:
			c.Push(cell.Styled(p.NoPermission, "-"), 1)
		}
	}

	userExec := p.Exec
	if f.Kind == fs.KindFile {
		userExec = p.ExecFile
	}

	perm := mode.Perm()
	bit(perm&0o400 != 0, "r", p.Read)
	bit(perm&0o200 != 0, "w", p.Write)
	execBit(perm&0o100 != 0, mode&os.ModeSetuid != 0, "s", "S", userExec)
	bit(perm&0o040 != 0, "r", p.Read)
	bit(perm&0o020 != 0, "w", p.Write)
	execBit(perm&0o010 != 0, mode&os.ModeSetgid != 0, "s", "S", p.Exec)
	bit(perm&0o004 != 0, "r", p.Read)
	bit(perm&0o002 != 0, "w", p.Write)
	execBit(perm&0o001 != 0, mode&os.ModeSticky != 0, "t", "T", p.Exec)
	return c
}

func typeChar(k fs.Kind) string {
	switch k {
	case fs.KindDirectory:
		return "d"
	case fs.KindSymlink:
		return "l"
	case fs.KindPipe:
		return "|"
	case fs.KindSocket:
		return "s"
	case fs.KindBlockDevice:
		return "b"
	case fs.KindCharDevice:
		return "c"
	}
	return "."
}

func renderLinks(f *fs.File, th *theme.Theme) cell.TextCell {
	if f.Links == 0 {
		return cell.Blank(th.Punctuation)
	}
	return cell.PaintStr(th.Links, strconv.FormatUint(f.Links, 10))
}

// renderSize shows directories and devices as blank; a directory's size
// says nothing about its contents
func renderSize(f *fs.File, format SizeFormat, th *theme.Theme) cell.TextCell {
	if f.Info == nil || f.Kind != fs.KindFile {
		return cell.Blank(th.Punctuation)
	}
	n := f.Size()
	if n < 0 {
		return cell.Blank(th.Punctuation)
	}

	var s string
	switch format {
	case SizeBytes:
		return cell.PaintStr(th.Size.Number, humanize.Comma(n))
	case SizeBinary:
		if n < 1024 {
			return cell.PaintStr(th.Size.Number, strconv.FormatInt(n, 10))
		}
		s = humanize.IBytes(uint64(n))
	default:
		if n < 1000 {
			return cell.PaintStr(th.Size.Number, strconv.FormatInt(n, 10))
		}
		s = humanize.Bytes(uint64(n))
	}

	number, unit, _ := strings.Cut(s, " ")
	unit = strings.TrimSuffix(unit, "B")
	c := cell.PaintStr(th.Size.Number, number)
	c.Append(cell.PaintStr(th.Size.Unit, unit))
	return c
}

func renderUser(f *fs.File, th *theme.Theme) cell.TextCell {
	if f.Owner.User == "" {
		return cell.Blank(th.Punctuation)
	}
	style := th.Kinds.Normal
	if f.Owner.Mine {
		style = th.User
	}
	return cell.Paint(style, f.Owner.User)
}

func renderGroup(f *fs.File, th *theme.Theme) cell.TextCell {
	if f.Owner.Group == "" {
		return cell.Blank(th.Punctuation)
	}
	return cell.Paint(th.Group, f.Owner.Group)
}

const (
	recentLayout = "_2 Jan 15:04"
	oldLayout    = "_2 Jan  2006"
)

func renderTime(f *fs.File, format TimeFormat, env Env, th *theme.Theme) cell.TextCell {
	if f.Info == nil {
		return cell.Blank(th.Punctuation)
	}
	t := f.Info.ModTime()
	if t.IsZero() {
		return cell.Blank(th.Punctuation)
	}

	var s string
	switch format {
	case TimeISO:
		if t.Year() == env.Now.Year() {
			s = t.Format("01-02 15:04")
		} else {
			s = t.Format("2006-01-02")
		}
	case TimeLongISO:
		s = t.Format("2006-01-02 15:04")
	case TimeFullISO:
		s = t.Format("2006-01-02 15:04:05.000000000 -0700")
	case TimeRelative:
		s = humanize.RelTime(t, env.Now, "ago", "from now")
	default:
		if t.Year() == env.Now.Year() {
			s = t.Format(recentLayout)
		} else {
			s = t.Format(oldLayout)
		}
	}
	return cell.Paint(th.Date, s)
}

func renderGit(st git.Status, th *theme.Theme) cell.TextCell {
	var c cell.TextCell
	c.Push(gitChar(st.Staged, th), 1)
	c.Push(gitChar(st.Unstaged, th), 1)
	return c
}

func gitChar(k git.StatusKind, th *theme.Theme) cell.Fragment {
	g := th.Git
	style := th.Punctuation
	switch k {
	case git.New:
		style = g.New
	case git.Modified:
		style = g.Modified
	case git.Deleted:
		style = g.Deleted
	case git.Renamed:
		style = g.Renamed
	case git.TypeChange:
		style = g.TypeChange
	case git.Ignored:
		style = g.Ignored
	case git.Conflicted:
		style = g.Conflicted
	}
	return cell.Styled(style, k.Char())
}
