package auth

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleStaff:
		return true
	}
	return false
}

// Permission names follow the resource:action convention.
const (
	PermUserCreate = "user:create"
	PermUserRead   = "user:read"
	PermUserUpdate = "user:update"
	PermUserDelete = "user:delete"
	PermUserList   = "user:list"

	PermStudentCreate     = "student:create"
	PermStudentRead       = "student:read"
	PermStudentUpdate     = "student:update"
	PermStudentDelete     = "student:delete"
	PermStudentList       = "student:list"
	PermStudentGrades     = "student:grades"
	PermStudentAttendance = "student:attendance"

	PermTeacherCreate = "teacher:create"
	PermTeacherRead   = "teacher:read"
	PermTeacherUpdate = "teacher:update"
	PermTeacherDelete = "teacher:delete"
	PermTeacherList   = "teacher:list"

	PermClassCreate        = "class:create"
	PermClassRead          = "class:read"
	PermClassUpdate        = "class:update"
	PermClassDelete        = "class:delete"
	PermClassList          = "class:list"
	PermClassAssignTeacher = "class:assign_teacher"

	PermAssignmentCreate = "assignment:create"
	PermAssignmentRead   = "assignment:read"
	PermAssignmentUpdate = "assignment:update"
	PermAssignmentDelete = "assignment:delete"
	PermAssignmentList   = "assignment:list"
	PermAssignmentGrade  = "assignment:grade"
	PermAssignmentSubmit = "assignment:submit"

	PermGradeCreate = "grade:create"
	PermGradeRead   = "grade:read"
	PermGradeUpdate = "grade:update"
	PermGradeList   = "grade:list"

	PermAttendanceMark = "attendance:mark"
	PermAttendanceRead = "attendance:read"
	PermAttendanceList = "attendance:list"

	PermFeeCreate  = "fee:create"
	PermFeeRead    = "fee:read"
	PermFeeUpdate  = "fee:update"
	PermFeeDelete  = "fee:delete"
	PermFeeList    = "fee:list"
	PermFeePayment = "fee:payment"

	PermCommunicationSend      = "communication:send"
	PermCommunicationRead      = "communication:read"
	PermCommunicationBroadcast = "communication:broadcast"

	PermCMSCreate  = "cms:create"
	PermCMSRead    = "cms:read"
	PermCMSUpdate  = "cms:update"
	PermCMSDelete  = "cms:delete"
	PermCMSList    = "cms:list"
	PermCMSPublish = "cms:publish"

	PermCRMCreate      = "crm:create"
	PermCRMRead        = "crm:read"
	PermCRMUpdate      = "crm:update"
	PermCRMDelete      = "crm:delete"
	PermCRMList        = "crm:list"
	PermCRMConvertLead = "crm:convert_lead"
)

var allPermissions = []string{
	PermUserCreate, PermUserRead, PermUserUpdate, PermUserDelete, PermUserList,
	PermStudentCreate, PermStudentRead, PermStudentUpdate, PermStudentDelete,
	PermStudentList, PermStudentGrades, PermStudentAttendance,
	PermTeacherCreate, PermTeacherRead, PermTeacherUpdate, PermTeacherDelete, PermTeacherList,
	PermClassCreate, PermClassRead, PermClassUpdate, PermClassDelete, PermClassList, PermClassAssignTeacher,
	PermAssignmentCreate, PermAssignmentRead, PermAssignmentUpdate, PermAssignmentDelete,
	PermAssignmentList, PermAssignmentGrade, PermAssignmentSubmit,
	PermGradeCreate, PermGradeRead, PermGradeUpdate, PermGradeList,
	PermAttendanceMark, PermAttendanceRead, PermAttendanceList,
	PermFeeCreate, PermFeeRead, PermFeeUpdate, PermFeeDelete, PermFeeList, PermFeePayment,
	PermCommunicationSend, PermCommunicationRead, PermCommunicationBroadcast,
	PermCMSCreate, PermCMSRead, PermCMSUpdate, PermCMSDelete, PermCMSList, PermCMSPublish,
	PermCRMCreate, PermCRMRead, PermCRMUpdate, PermCRMDelete, PermCRMList, PermCRMConvertLead,
}

// RoleTable is the static role to permission mapping. Built once at
// process start and injected wherever authorization decisions are made;
// there are no per-user overrides.
type RoleTable struct {
	perms map[Role][]string
}

func NewRoleTable() *RoleTable {
	return &RoleTable{
		perms: map[Role][]string{
			RoleAdmin: allPermissions,
			RoleTeacher: {
				PermStudentRead, PermStudentList, PermStudentGrades, PermStudentAttendance,
				PermTeacherRead,
				PermClassRead, PermClassList,
				PermAssignmentCreate, PermAssignmentRead, PermAssignmentUpdate,
				PermAssignmentDelete, PermAssignmentList, PermAssignmentGrade,
				PermGradeCreate, PermGradeRead, PermGradeUpdate, PermGradeList,
				PermAttendanceMark, PermAttendanceRead, PermAttendanceList,
				PermCommunicationSend, PermCommunicationRead,
				PermCMSRead,
			},
			RoleStudent: {
				PermStudentRead,
				PermClassRead, PermClassList,
				PermAssignmentRead, PermAssignmentList, PermAssignmentSubmit,
				PermGradeRead, PermGradeList,
				PermAttendanceRead,
				PermCommunicationRead,
				PermCMSRead,
			},
			RoleParent: {
				PermStudentRead, PermStudentGrades, PermStudentAttendance,
				PermClassRead, PermClassList,
				PermGradeRead, PermGradeList,
				PermAttendanceRead,
				PermFeeRead, PermFeeList, PermFeePayment,
				PermCommunicationRead, PermCommunicationSend,
				PermCMSRead,
			},
			RoleStaff: {
				PermStudentRead, PermStudentList,
				PermTeacherRead, PermTeacherList,
				PermClassRead, PermClassList,
				PermCommunicationSend, PermCommunicationRead,
				PermCMSRead,
				PermCRMCreate, PermCRMRead, PermCRMUpdate, PermCRMList,
			},
		},
	}
}

// PermissionsFor returns the permission set for a role. Unknown roles get
// an empty set.
func (t *RoleTable) PermissionsFor(role Role) []string {
	return t.perms[role]
}

func (t *RoleTable) HasPermission(role Role, permission string) bool {
	for _, p := range t.perms[role] {
		if p == permission {
			return true
		}
	}
	return false
}
