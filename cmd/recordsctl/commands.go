package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/session"
	"github.com/unirecords/client-go/internal/store"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	sess       *session.Session
	students   *store.StudentStore
	schedules  *store.ScheduleStore
	attendance *store.AttendanceStore
	gradebook  *store.GradebookStore
	subjects   *store.SubjectStore
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage: recordsctl COMMAND [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login -email EMAIL -password PASSWORD       start a session")
	fmt.Println("  register -email EMAIL -password PASSWORD    create an account and start a session")
	fmt.Println("  me                                          show the current identity")
	fmt.Println("  logout                                      clear the stored credential")
	fmt.Println("  students [-group N] [-major M] [-year N] [-limit N]")
	fmt.Println("  students-add -name NAME -group N -major M -year N -gender G -birth YYYY-MM-DD")
	fmt.Println("  students-update -id N [-name NAME] [-group N] [-major M] [-year N] [-gender G] [-birth YYYY-MM-DD]")
	fmt.Println("  students-del -id N")
	fmt.Println("  gpa -id N")
	fmt.Println("  schedules [-group N]")
	fmt.Println("  schedules-add -group N -subject S -start RFC3339 -end RFC3339")
	fmt.Println("  schedules-update -id N [-group N] [-subject S] [-start RFC3339] [-end RFC3339]")
	fmt.Println("  schedules-del -id N")
	fmt.Println("  attendance (-student N | -subject S)")
	fmt.Println("  attendance-add -student N -subject S -day DD.MM.YYYY [-visited]")
	fmt.Println("  attendance-mark -id N -visited BOOL")
	fmt.Println("  attendance-del -id N")
	fmt.Println("  subjects")
	fmt.Println("  assignments -subject S")
	fmt.Println("  assignments-add -name NAME -subject S -weight N -date DD.MM.YYYY")
	fmt.Println("  grades-add -student N -assignment N -mark N")
	fmt.Println("  rankings [-group N] [-subject S]")
	fmt.Println("  export -what students|attendance|rankings [-format csv|pdf] [-out FILE] [filter flags]")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	// Reads below never require an explicit identity resolve; the stored
	// token rides along on the transport either way. "me" resolves lazily.
	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:], false)
	case "register":
		return cli.login(ctx, args[2:], true)
	case "me":
		return cli.me(ctx)
	case "logout":
		cli.sess.Logout()
		fmt.Println("logged out")
		return nil
	case "students":
		return cli.listStudents(ctx, args[2:])
	case "students-add":
		return cli.addStudent(ctx, args[2:])
	case "students-update":
		return cli.updateStudent(ctx, args[2:])
	case "students-del":
		return cli.deleteByID(args[2:], "students-del", func(id int64) error {
			return cli.students.Delete(ctx, id)
		})
	case "gpa":
		return cli.gpa(ctx, args[2:])
	case "schedules":
		return cli.listSchedules(ctx, args[2:])
	case "schedules-add":
		return cli.addSchedule(ctx, args[2:])
	case "schedules-update":
		return cli.updateSchedule(ctx, args[2:])
	case "schedules-del":
		return cli.deleteByID(args[2:], "schedules-del", func(id int64) error {
			return cli.schedules.Delete(ctx, id)
		})
	case "attendance":
		return cli.listAttendance(ctx, args[2:])
	case "attendance-add":
		return cli.addAttendance(ctx, args[2:])
	case "attendance-mark":
		return cli.markAttendance(ctx, args[2:])
	case "attendance-del":
		return cli.deleteByID(args[2:], "attendance-del", func(id int64) error {
			return cli.attendance.Delete(ctx, id)
		})
	case "subjects":
		return cli.listSubjects(ctx)
	case "assignments":
		return cli.listAssignments(ctx, args[2:])
	case "assignments-add":
		return cli.addAssignment(ctx, args[2:])
	case "grades-add":
		return cli.addGrade(ctx, args[2:])
	case "rankings":
		return cli.rankings(ctx, args[2:])
	case "export":
		return cli.export(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, args []string, register bool) error {
	name := "login"
	if register {
		name = "register"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	creds := models.Credentials{Email: *email, Password: *password}

	var (
		user *models.User
		err  error
	)
	if register {
		user, err = cli.sess.Register(ctx, creds)
	} else {
		user, err = cli.sess.Login(ctx, creds)
	}
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (id %d)\n", user.Email, user.ID)
	return nil
}

func (cli *commandLine) me(ctx context.Context) error {
	if !cli.sess.HasCredential() {
		fmt.Println("not logged in")
		return nil
	}
	if err := cli.sess.Resolve(ctx); err != nil {
		return err
	}
	user := cli.sess.CurrentUser()
	fmt.Printf("%s (id %d)\n", user.Email, user.ID)
	return nil
}

func studentFilterFlags(fs *flag.FlagSet) *models.StudentFilter {
	f := &models.StudentFilter{}
	fs.Int64Var(&f.GroupID, "group", 0, "filter by group id")
	fs.StringVar(&f.Major, "major", "", "filter by major")
	fs.IntVar(&f.CourseYear, "year", 0, "filter by course year")
	fs.IntVar(&f.Limit, "limit", 0, "limit results")
	return f
}

func (cli *commandLine) listStudents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students", flag.ExitOnError)
	filter := studentFilterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	students, err := cli.students.List(ctx, *filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGROUP\tMAJOR\tYEAR\tGENDER\tBIRTH DATE")
	for _, s := range students {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%s\t%s\n",
			s.ID, s.Name, s.GroupID, s.Major, s.CourseYear, s.Gender, s.BirthDate.Format("2006-01-02"))
	}
	return w.Flush()
}

func (cli *commandLine) addStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students-add", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	group := fs.Int64("group", 0, "group id")
	major := fs.String("major", "", "major")
	year := fs.Int("year", 0, "course year (1-6)")
	gender := fs.String("gender", "", "gender")
	birth := fs.String("birth", "", "birth date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	birthDate, err := time.Parse("2006-01-02", *birth)
	if err != nil {
		return fmt.Errorf("parse -birth: %w", err)
	}
	student, err := cli.students.Create(ctx, models.CreateStudent{
		Name:       *name,
		GroupID:    *group,
		Major:      *major,
		CourseYear: *year,
		Gender:     *gender,
		BirthDate:  birthDate,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created student %d\n", student.ID)
	return nil
}

// parseStudentUpdate builds a partial payload carrying only the flags the
// caller actually passed; everything else stays nil and is omitted from the
// PATCH body.
func parseStudentUpdate(args []string) (int64, models.UpdateStudent, error) {
	fs := flag.NewFlagSet("students-update", flag.ExitOnError)
	id := fs.Int64("id", 0, "student id")
	name := fs.String("name", "", "full name")
	group := fs.Int64("group", 0, "group id")
	major := fs.String("major", "", "major")
	year := fs.Int("year", 0, "course year (1-6)")
	gender := fs.String("gender", "", "gender")
	birth := fs.String("birth", "", "birth date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return 0, models.UpdateStudent{}, err
	}
	if *id == 0 {
		fs.Usage()
		return 0, models.UpdateStudent{}, errHelp
	}

	var payload models.UpdateStudent
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			payload.Name = name
		case "group":
			payload.GroupID = group
		case "major":
			payload.Major = major
		case "year":
			payload.CourseYear = year
		case "gender":
			payload.Gender = gender
		case "birth":
			t, err := time.Parse("2006-01-02", *birth)
			if err != nil {
				parseErr = fmt.Errorf("parse -birth: %w", err)
				return
			}
			payload.BirthDate = &t
		}
	})
	if parseErr != nil {
		return 0, models.UpdateStudent{}, parseErr
	}
	return *id, payload, nil
}

func (cli *commandLine) updateStudent(ctx context.Context, args []string) error {
	id, payload, err := parseStudentUpdate(args)
	if err != nil {
		return err
	}
	student, err := cli.students.Update(ctx, id, payload)
	if err != nil {
		return err
	}
	fmt.Printf("updated student %d\n", student.ID)
	return nil
}

func (cli *commandLine) gpa(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gpa", flag.ExitOnError)
	id := fs.Int64("id", 0, "student id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	gpa, err := cli.students.GPA(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("%.2f\n", gpa)
	return nil
}

func (cli *commandLine) listSchedules(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("schedules", flag.ExitOnError)
	group := fs.Int64("group", 0, "filter by group id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	entries, err := cli.schedules.List(ctx, models.ScheduleFilter{GroupID: *group})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGROUP\tSUBJECT\tSTART\tEND")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
			e.ID, e.GroupID, e.Subject, e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
	}
	return w.Flush()
}

func (cli *commandLine) addSchedule(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("schedules-add", flag.ExitOnError)
	group := fs.Int64("group", 0, "group id")
	subject := fs.String("subject", "", "subject name")
	start := fs.String("start", "", "start time, RFC3339")
	end := fs.String("end", "", "end time, RFC3339")
	if err := fs.Parse(args); err != nil {
		return err
	}
	startTime, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, *end)
	if err != nil {
		return fmt.Errorf("parse -end: %w", err)
	}
	entry, err := cli.schedules.Create(ctx, models.CreateScheduleEntry{
		GroupID:   *group,
		Subject:   *subject,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created schedule entry %d\n", entry.ID)
	return nil
}

// parseScheduleUpdate mirrors parseStudentUpdate for schedule slots.
func parseScheduleUpdate(args []string) (int64, models.UpdateScheduleEntry, error) {
	fs := flag.NewFlagSet("schedules-update", flag.ExitOnError)
	id := fs.Int64("id", 0, "schedule entry id")
	group := fs.Int64("group", 0, "group id")
	subject := fs.String("subject", "", "subject name")
	start := fs.String("start", "", "start time, RFC3339")
	end := fs.String("end", "", "end time, RFC3339")
	if err := fs.Parse(args); err != nil {
		return 0, models.UpdateScheduleEntry{}, err
	}
	if *id == 0 {
		fs.Usage()
		return 0, models.UpdateScheduleEntry{}, errHelp
	}

	var payload models.UpdateScheduleEntry
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "group":
			payload.GroupID = group
		case "subject":
			payload.Subject = subject
		case "start":
			t, err := time.Parse(time.RFC3339, *start)
			if err != nil {
				parseErr = fmt.Errorf("parse -start: %w", err)
				return
			}
			payload.StartTime = &t
		case "end":
			t, err := time.Parse(time.RFC3339, *end)
			if err != nil {
				parseErr = fmt.Errorf("parse -end: %w", err)
				return
			}
			payload.EndTime = &t
		}
	})
	if parseErr != nil {
		return 0, models.UpdateScheduleEntry{}, parseErr
	}
	return *id, payload, nil
}

func (cli *commandLine) updateSchedule(ctx context.Context, args []string) error {
	id, payload, err := parseScheduleUpdate(args)
	if err != nil {
		return err
	}
	entry, err := cli.schedules.Update(ctx, id, payload)
	if err != nil {
		return err
	}
	fmt.Printf("updated schedule entry %d\n", entry.ID)
	return nil
}

func (cli *commandLine) listAttendance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attendance", flag.ExitOnError)
	student := fs.Int64("student", 0, "filter by student id")
	subject := fs.String("subject", "", "filter by subject name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := models.AttendanceFilter{StudentID: *student, SubjectName: *subject}
	if filter.Empty() {
		fmt.Println("select -student or -subject first")
		return nil
	}
	records, err := cli.attendance.List(ctx, filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTUDENT\tSUBJECT\tDAY\tVISITED")
	for _, r := range records {
		name := fmt.Sprintf("%d", r.StudentID)
		if r.StudentFirstName != "" || r.StudentSurname != "" {
			name = fmt.Sprintf("%d (%s %s)", r.StudentID, r.StudentFirstName, r.StudentSurname)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", r.ID, name, r.SubjectName, r.VisitDay, r.Visited)
	}
	return w.Flush()
}

func (cli *commandLine) addAttendance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attendance-add", flag.ExitOnError)
	student := fs.Int64("student", 0, "student id")
	subject := fs.String("subject", "", "subject name")
	day := fs.String("day", "", "visit day, DD.MM.YYYY")
	visited := fs.Bool("visited", false, "visited flag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	visitDay, err := models.ParseDay(*day)
	if err != nil {
		return err
	}
	record, err := cli.attendance.Create(ctx, models.CreateAttendance{
		SubjectName: *subject,
		StudentID:   *student,
		VisitDay:    visitDay,
		Visited:     *visited,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created attendance record %d\n", record.ID)
	return nil
}

func (cli *commandLine) markAttendance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attendance-mark", flag.ExitOnError)
	id := fs.Int64("id", 0, "attendance record id")
	visited := fs.Bool("visited", true, "visited flag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := cli.attendance.SetVisited(ctx, *id, *visited); err != nil {
		return err
	}
	fmt.Printf("updated attendance record %d\n", *id)
	return nil
}

func (cli *commandLine) listSubjects(ctx context.Context) error {
	subjects, err := cli.subjects.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Println(s.Name)
	}
	return nil
}

func (cli *commandLine) listAssignments(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assignments", flag.ExitOnError)
	subject := fs.String("subject", "", "subject name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := models.AssignmentFilter{SubjectName: *subject}
	if filter.Empty() {
		fmt.Println("select -subject first")
		return nil
	}
	assignments, err := cli.gradebook.Assignments(ctx, filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSUBJECT\tWEIGHT\tDATE")
	for _, a := range assignments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\t%s\n", a.ID, a.Name, a.SubjectName, a.Weight, a.Date)
	}
	return w.Flush()
}

func (cli *commandLine) addAssignment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assignments-add", flag.ExitOnError)
	name := fs.String("name", "", "assignment name")
	subject := fs.String("subject", "", "subject name")
	weight := fs.Int("weight", 0, "weight percentage (1-100)")
	day := fs.String("date", "", "assignment date, DD.MM.YYYY")
	if err := fs.Parse(args); err != nil {
		return err
	}
	date, err := models.ParseDay(*day)
	if err != nil {
		return err
	}
	assignment, err := cli.gradebook.CreateAssignment(ctx, models.CreateAssignment{
		Name:        *name,
		SubjectName: *subject,
		Weight:      *weight,
		Date:        date,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created assignment %d\n", assignment.ID)
	return nil
}

func (cli *commandLine) addGrade(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("grades-add", flag.ExitOnError)
	student := fs.Int64("student", 0, "student id")
	assignment := fs.Int64("assignment", 0, "assignment id")
	mark := fs.Int("mark", 0, "mark (0-100)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	grade, err := cli.gradebook.CreateGrade(ctx, models.CreateGrade{
		StudentID:    *student,
		AssignmentID: *assignment,
		Mark:         *mark,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created grade %d\n", grade.ID)
	return nil
}

func (cli *commandLine) rankings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rankings", flag.ExitOnError)
	group := fs.Int64("group", 0, "filter by group id")
	subject := fs.String("subject", "", "filter by subject name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := models.RankingFilter{GroupID: *group, SubjectName: *subject}
	if filter.Empty() {
		fmt.Println("select -group or -subject first")
		return nil
	}
	entries, err := cli.gradebook.Rankings(ctx, filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSTUDENT\tGPA")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%d\t%.2f\n", i+1, e.StudentID, e.GPA)
	}
	return w.Flush()
}

func (cli *commandLine) deleteByID(args []string, name string, del func(id int64) error) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.Int64("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()
		return errHelp
	}
	if err := del(*id); err != nil {
		return err
	}
	fmt.Printf("deleted %d\n", *id)
	return nil
}
