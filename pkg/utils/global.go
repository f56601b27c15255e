package utils

//DetectionBatchSize is the number of frames sent to the detector in one call
const DetectionBatchSize = 20

//BallTrackID is the single synthetic identity every ball detection is stored under
const BallTrackID = 1

//ClassPlayer is the detector label of an outfield player
const ClassPlayer = "player"

//ClassGoalkeeper is the detector label of a goalkeeper, relabelled as ClassPlayer before tracking
const ClassGoalkeeper = "goalkeeper"

//ClassReferee is the detector label of a referee
const ClassReferee = "referee"

//ClassBall is the detector label of the ball
const ClassBall = "ball"

//CategoryPlayers is the TrackStore category holding players (goalkeepers included)
const CategoryPlayers = "players"

//CategoryReferees is the TrackStore category holding referees
const CategoryReferees = "referees"

//CategoryBall is the TrackStore category holding the ball
const CategoryBall = "ball"

//NoTeamID marks a track that has not been assigned to a team
const NoTeamID = 0

//DarkTeamID is an enum to represent the team with darker uniforms
const DarkTeamID = 1

//LightTeamID is an enum to represent the team with lighter uniforms
const LightTeamID = 2

//NoPlayerID is returned when no player is close enough to the ball
const NoPlayerID = -1
