package classroom

import "github.com/saulo-duarte/quizroom/internal/user"

type Classroom struct {
	ClassName        string   `json:"class_name"`
	Subject          string   `json:"subject"`
	ClassCode        string   `json:"class_code"`
	TeacherUsername  string   `json:"teacher_username"`
	StudentUsernames []string `json:"student_usernames"`
	QuizIDs          []string `json:"quizIds"`
}

func (c *Classroom) HasStudent(username string) bool {
	for _, s := range c.StudentUsernames {
		if s == username {
			return true
		}
	}
	return false
}

// VisibleTo reports whether the owner or an enrolled student is asking.
func (c *Classroom) VisibleTo(role user.Role, username string) bool {
	switch role {
	case user.RoleTeacher:
		return c.TeacherUsername == username
	case user.RoleStudent:
		return c.HasStudent(username)
	}
	return false
}

func (c *Classroom) clone() Classroom {
	out := *c
	out.StudentUsernames = append([]string{}, c.StudentUsernames...)
	out.QuizIDs = append([]string{}, c.QuizIDs...)
	return out
}

type CreateClassroomRequest struct {
	ClassName string `json:"class_name"`
	Subject   string `json:"subject"`
}

type JoinClassroomRequest struct {
	ClassCode string `json:"class_code"`
}
