package bytetrack

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StateMean is the 8 dimensional state (x, y, a, h, vx, vy, va, vh)
type StateMean [8]float64

// KalmanFilter is a constant velocity filter over the Xyah box space
type KalmanFilter struct {
	stdWeightPosition float64
	stdWeightVelocity float64
	motionMat         *mat.Dense
	updateMat         *mat.Dense
}

// NewKalmanFilter initializes and returns a new KalmanFilter
func NewKalmanFilter(stdWeightPosition, stdWeightVelocity float64) *KalmanFilter {
	const ndim = 4
	const dt = 1.0

	// identity with dt on the position/velocity coupling
	motionMat := mat.NewDense(2*ndim, 2*ndim, nil)
	for i := 0; i < 2*ndim; i++ {
		motionMat.Set(i, i, 1)
	}
	for i := 0; i < ndim; i++ {
		motionMat.Set(i, ndim+i, dt)
	}

	// observe the first four state components
	updateMat := mat.NewDense(ndim, 2*ndim, nil)
	for i := 0; i < ndim; i++ {
		updateMat.Set(i, i, 1)
	}

	return &KalmanFilter{
		stdWeightPosition: stdWeightPosition,
		stdWeightVelocity: stdWeightVelocity,
		motionMat:         motionMat,
		updateMat:         updateMat,
	}
}

// Initiate creates the state of an unassociated measurement
func (kf *KalmanFilter) Initiate(measurement Xyah) (StateMean, *mat.Dense) {
	var mean StateMean
	copy(mean[:4], measurement[:])

	h := measurement[3]
	std := [8]float64{
		2 * kf.stdWeightPosition * h,
		2 * kf.stdWeightPosition * h,
		1e-2,
		2 * kf.stdWeightPosition * h,
		10 * kf.stdWeightVelocity * h,
		10 * kf.stdWeightVelocity * h,
		1e-5,
		10 * kf.stdWeightVelocity * h,
	}

	covariance := mat.NewDense(8, 8, nil)
	for i, v := range std {
		covariance.Set(i, i, v*v)
	}

	return mean, covariance
}

// Predict runs the prediction step in place
func (kf *KalmanFilter) Predict(mean *StateMean, covariance *mat.Dense) {
	h := mean[3]
	std := [8]float64{
		kf.stdWeightPosition * h,
		kf.stdWeightPosition * h,
		1e-2,
		kf.stdWeightPosition * h,
		kf.stdWeightVelocity * h,
		kf.stdWeightVelocity * h,
		1e-5,
		kf.stdWeightVelocity * h,
	}

	motionCov := mat.NewDense(8, 8, nil)
	for i, v := range std {
		motionCov.Set(i, i, v*v)
	}

	meanVec := mat.NewVecDense(8, mean[:])
	var next mat.VecDense
	next.MulVec(kf.motionMat, meanVec)
	for i := 0; i < 8; i++ {
		mean[i] = next.AtVec(i)
	}

	var tmp, cov mat.Dense
	tmp.Mul(kf.motionMat, covariance)
	cov.Mul(&tmp, kf.motionMat.T())
	cov.Add(&cov, motionCov)
	covariance.Copy(&cov)
}

// Update runs the correction step in place
func (kf *KalmanFilter) Update(mean *StateMean, covariance *mat.Dense, measurement Xyah) error {
	projectedMean, projectedCov := kf.project(mean, covariance)

	var chol mat.Cholesky
	if ok := chol.Factorize(projectedCov); !ok {
		return errors.New("failed to factorize projected covariance")
	}

	// kalman gain K = P H^T S^-1, computed as (S^-1 (P H^T)^T)^T
	var b mat.Dense
	b.Mul(covariance, kf.updateMat.T())

	var gainT mat.Dense
	if err := chol.SolveTo(&gainT, b.T()); err != nil {
		return fmt.Errorf("failed to compute kalman gain: %w", err)
	}

	innovation := mat.NewVecDense(4, nil)
	for i := 0; i < 4; i++ {
		innovation.SetVec(i, measurement[i]-projectedMean[i])
	}

	var delta mat.VecDense
	delta.MulVec(gainT.T(), innovation)
	for i := 0; i < 8; i++ {
		mean[i] += delta.AtVec(i)
	}

	// P = P - K S K^T
	var ks, kskt mat.Dense
	ks.Mul(gainT.T(), projectedCov)
	kskt.Mul(&ks, &gainT)
	covariance.Sub(covariance, &kskt)

	return nil
}

// project maps the state distribution to measurement space
func (kf *KalmanFilter) project(mean *StateMean, covariance *mat.Dense) ([4]float64, *mat.SymDense) {
	h := mean[3]
	std := [4]float64{
		kf.stdWeightPosition * h,
		kf.stdWeightPosition * h,
		1e-1,
		kf.stdWeightPosition * h,
	}

	var projectedMean [4]float64
	copy(projectedMean[:], mean[:4])

	var tmp, cov mat.Dense
	tmp.Mul(kf.updateMat, covariance)
	cov.Mul(&tmp, kf.updateMat.T())

	// symmetrize while adding the measurement noise
	projectedCov := mat.NewSymDense(4, nil)
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			v := (cov.At(i, j) + cov.At(j, i)) / 2
			if i == j {
				v += std[i] * std[i]
			}
			projectedCov.SetSym(i, j, v)
		}
	}

	return projectedMean, projectedCov
}
