package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/pkg/export"
)

// export renders one of the list views to CSV or PDF, going through the
// same stores the interactive commands use.
func (cli *commandLine) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	what := fs.String("what", "", "dataset: students, attendance or rankings")
	format := fs.String("format", "csv", "output format: csv or pdf")
	out := fs.String("out", "", "output file (default WHAT.FORMAT)")
	group := fs.Int64("group", 0, "filter by group id")
	subject := fs.String("subject", "", "filter by subject name")
	student := fs.Int64("student", 0, "filter by student id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		data export.Dataset
		err  error
	)
	switch *what {
	case "students":
		data, err = cli.studentsDataset(ctx, models.StudentFilter{GroupID: *group})
	case "attendance":
		data, err = cli.attendanceDataset(ctx, models.AttendanceFilter{StudentID: *student, SubjectName: *subject})
	case "rankings":
		data, err = cli.rankingsDataset(ctx, models.RankingFilter{GroupID: *group, SubjectName: *subject})
	default:
		fs.Usage()
		return errHelp
	}
	if err != nil {
		return err
	}

	rendered, err := export.Render(data, export.Format(*format))
	if err != nil {
		return err
	}

	target := *out
	if target == "" {
		target = *what + "." + *format
	}
	if err := os.WriteFile(target, rendered, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Printf("wrote %s (%d rows)\n", target, len(data.Rows))
	return nil
}

func (cli *commandLine) studentsDataset(ctx context.Context, filter models.StudentFilter) (export.Dataset, error) {
	students, err := cli.students.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Students",
		Headers: []string{"ID", "Name", "Group", "Major", "Year", "Gender", "Birth date"},
	}
	for _, s := range students {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(s.ID, 10), s.Name, strconv.FormatInt(s.GroupID, 10),
			s.Major, strconv.Itoa(s.CourseYear), s.Gender, s.BirthDate.Format("2006-01-02"),
		})
	}
	return data, nil
}

func (cli *commandLine) attendanceDataset(ctx context.Context, filter models.AttendanceFilter) (export.Dataset, error) {
	if filter.Empty() {
		return export.Dataset{}, fmt.Errorf("attendance export requires -student or -subject")
	}
	records, err := cli.attendance.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Attendance " + time.Now().Format("2006-01-02"),
		Headers: []string{"ID", "Student", "Subject", "Day", "Visited"},
	}
	for _, r := range records {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(r.ID, 10), strconv.FormatInt(r.StudentID, 10),
			r.SubjectName, r.VisitDay.String(), strconv.FormatBool(r.Visited),
		})
	}
	return data, nil
}

func (cli *commandLine) rankingsDataset(ctx context.Context, filter models.RankingFilter) (export.Dataset, error) {
	if filter.Empty() {
		return export.Dataset{}, fmt.Errorf("rankings export requires -group or -subject")
	}
	entries, err := cli.gradebook.Rankings(ctx, filter)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Rankings",
		Headers: []string{"Rank", "Student", "GPA"},
	}
	for i, e := range entries {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(i + 1), strconv.FormatInt(e.StudentID, 10), fmt.Sprintf("%.2f", e.GPA),
		})
	}
	return data, nil
}
