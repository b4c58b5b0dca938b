package user

// Record holds the fields shared by both roles. Username is the primary key
// of its role table; Email is the key of the shared email index.
type Record struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Username     string   `json:"username"`
	ClassroomIDs []string `json:"classroomIds"`
}

func (r *Record) hasClassroom(code string) bool {
	for _, c := range r.ClassroomIDs {
		if c == code {
			return true
		}
	}
	return false
}

func (r *Record) clone() Record {
	c := *r
	c.ClassroomIDs = append([]string{}, r.ClassroomIDs...)
	return c
}

// Student.ClassroomIDs lists joined classrooms.
type Student struct {
	Record
}

// Teacher.ClassroomIDs lists owned classrooms.
type Teacher struct {
	Record
}

type Account struct {
	Role         Role     `json:"role"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	ClassroomIDs []string `json:"classroom_ids"`
}

func newAccount(role Role, r *Record) *Account {
	return &Account{
		Role:         role,
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		ClassroomIDs: append([]string{}, r.ClassroomIDs...),
	}
}
