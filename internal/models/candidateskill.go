package models

type CandidateSkill struct {
	ID          int64  `db:"id" json:"id"`
	SkillName   string `db:"skill_name" json:"skill_name"`
	Score       int    `db:"score" json:"score"`
	CandidateID int64  `db:"candidate_id" json:"candidate_id"`
}
